package driver

import (
	"path/filepath"

	"github.com/xyproto/env/v2"

	"github.com/YulinWu/interpreter/pkg/interpreter"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvMaxCallDepth     = "II_MAX_CALL_DEPTH"
	EnvWarningsAsErrors = "II_WARNINGS_AS_ERRORS"
	EnvQuiet            = "II_QUIET"
	EnvHistory          = "II_HISTORY"
)

// Config holds the options for one run. Layers are applied in order:
// defaults, manifest settings, environment, then command-line flags.
type Config struct {
	WarningsAsErrors bool
	Quiet            bool
	MaxCallDepth     int
	HistoryPath      string
}

func DefaultConfig() Config {
	return Config{
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
		HistoryPath:  filepath.Join(env.Str("HOME", "."), ".ii_history"),
	}
}

// ApplySettings copies the settings present in a manifest.
func (c *Config) ApplySettings(s Settings) {
	if s.WarningsAsErrors != nil {
		c.WarningsAsErrors = *s.WarningsAsErrors
	}
	if s.Quiet != nil {
		c.Quiet = *s.Quiet
	}
	if s.MaxCallDepth != nil && *s.MaxCallDepth > 0 {
		c.MaxCallDepth = *s.MaxCallDepth
	}
}

// ApplyEnv overrides fields whose variable is set. A call depth that is
// not a positive integer is ignored.
func (c *Config) ApplyEnv() {
	if env.Has(EnvWarningsAsErrors) {
		c.WarningsAsErrors = env.Bool(EnvWarningsAsErrors)
	}
	if env.Has(EnvQuiet) {
		c.Quiet = env.Bool(EnvQuiet)
	}
	if depth := env.Int(EnvMaxCallDepth, 0); depth > 0 {
		c.MaxCallDepth = depth
	}
	if path := env.Str(EnvHistory); path != "" {
		c.HistoryPath = path
	}
}
