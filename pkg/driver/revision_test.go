package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// commitFile writes contents to name inside the repository and commits it.
func commitFile(t *testing.T, repo *git.Repository, dir, name, contents string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatalf("Add: %v", err)
	}
	hash, err := worktree.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "ii",
			Email: "ii@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestReadAtRevision(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	first := commitFile(t, repo, dir, "main.ii", `print "old";`)
	commitFile(t, repo, dir, "main.ii", `print "new";`)

	path := filepath.Join(dir, "main.ii")
	for rev, want := range map[string]string{
		first:    `print "old";`,
		"HEAD~1": `print "old";`,
		"HEAD":   `print "new";`,
	} {
		got, err := ReadAtRevision(path, rev)
		if err != nil {
			t.Fatalf("ReadAtRevision(%s) returned error: %v", rev, err)
		}
		if got != want {
			t.Fatalf("ReadAtRevision(%s) = %q, want %q", rev, got, want)
		}
	}

	var out strings.Builder
	if err := RunFile(path, "HEAD~1", Options{Stdout: &out, Config: DefaultConfig()}); err != nil {
		t.Fatalf("RunFile returned error: %v", err)
	}
	if out.String() != "old" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReadAtRevisionErrors(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	commitFile(t, repo, dir, "main.ii", "print 1;")

	if _, err := ReadAtRevision(filepath.Join(dir, "missing.ii"), "HEAD"); err == nil || !strings.Contains(err.Error(), "does not exist at HEAD") {
		t.Fatalf("missing file error = %v", err)
	}
	if _, err := ReadAtRevision(filepath.Join(dir, "main.ii"), "no-such-branch"); err == nil {
		t.Fatalf("expected unresolvable revision error")
	}
	outside := filepath.Join(t.TempDir(), "main.ii")
	if err := os.WriteFile(outside, []byte("print 1;"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadAtRevision(outside, "HEAD"); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}
