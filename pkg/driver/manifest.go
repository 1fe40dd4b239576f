package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file the CLI looks for when no script path is given.
const ManifestName = "ii.yml"

// Manifest represents the parsed contents of ii.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	Settings    Settings
}

// TargetSpec names a script to run, optionally as of a git revision.
type TargetSpec struct {
	Name string
	Main string
	Rev  string
}

// Settings are run options that the environment and flags may override.
// Nil fields were not set in the manifest.
type Settings struct {
	WarningsAsErrors *bool `yaml:"warnings_as_errors"`
	Quiet            *bool `yaml:"quiet"`
	MaxCallDepth     *int  `yaml:"max_call_depth"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses ii.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from dir looking for ii.yml.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

var (
	ErrNoManifest = errors.New("manifest: no " + ManifestName + " found")
	ErrNoTarget   = errors.New("manifest: no targets defined")
)

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}([0-9A-Za-z\-\+\.]*)?$`)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Version != "" && !versionPattern.MatchString(m.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("invalid version %q", m.Version))
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main script", name))
		} else if filepath.IsAbs(target.Main) && target.Rev != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q: main must be relative to the repository when rev is set", name))
		}
	}
	if depth := m.Settings.MaxCallDepth; depth != nil && *depth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("settings.max_call_depth must be positive, got %d", *depth))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTarget
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	target, ok := m.Targets[strings.TrimSpace(name)]
	return target, ok
}

// ScriptPath resolves a target's main script against the manifest directory.
func (m *Manifest) ScriptPath(target *TargetSpec) string {
	if filepath.IsAbs(target.Main) {
		return target.Main
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(target.Main))
}

type manifestFile struct {
	Name     string     `yaml:"name"`
	Version  string     `yaml:"version"`
	Authors  stringList `yaml:"authors"`
	Targets  targetMap  `yaml:"targets"`
	Settings Settings   `yaml:"settings"`
}

type targetYAML struct {
	Main string `yaml:"main"`
	Rev  string `yaml:"rev"`
}

// targetMap keeps targets in document order; the first one is the default.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: target %q declared twice", key)
		}
		seen[key] = struct{}{}

		var entry targetYAML
		switch valueNode.Kind {
		case yaml.ScalarNode:
			// Short form: `app: src/app.ii`.
			entry.Main = valueNode.Value
		default:
			if err := valueNode.Decode(&entry); err != nil {
				return fmt.Errorf("manifest: target %q: %w", key, err)
			}
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Version:     strings.TrimSpace(mf.Version),
		Authors:     append([]string(nil), mf.Authors...),
		Targets:     make(map[string]*TargetSpec, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
		Settings:    mf.Settings,
	}
	for _, item := range mf.Targets.items {
		result.Targets[item.name] = &TargetSpec{
			Name: item.name,
			Main: strings.TrimSpace(item.spec.Main),
			Rev:  strings.TrimSpace(item.spec.Rev),
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}
