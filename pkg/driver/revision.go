package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ReadAtRevision returns the contents of path as committed at rev in the
// repository containing it. rev accepts anything go-git can resolve: a
// branch, tag, hash or expressions such as HEAD~1.
func ReadAtRevision(path, rev string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("revision: resolve %s: %w", path, err)
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(absPath), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("revision: open repository for %s: %w", path, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("revision: %w", err)
	}
	root, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return "", fmt.Errorf("revision: %w", err)
	}
	resolvedPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// The file may exist only in history.
		resolvedPath = filepath.Join(evalDir(filepath.Dir(absPath)), filepath.Base(absPath))
	}
	rel, err := filepath.Rel(root, resolvedPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("revision: %s is outside repository %s", path, root)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("revision: resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("revision: commit %s: %w", hash, err)
	}
	file, err := commit.File(filepath.ToSlash(rel))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("revision: %s does not exist at %s", filepath.ToSlash(rel), rev)
		}
		return "", fmt.Errorf("revision: %s at %s: %w", filepath.ToSlash(rel), rev, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("revision: read %s at %s: %w", filepath.ToSlash(rel), rev, err)
	}
	return contents, nil
}

func evalDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}
