// Package config loads fillforge settings from a YAML file with environment
// variable overrides. Precedence is defaults, then file, then environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/fillforge/pkg/typing"
)

// Storage backend names accepted in Config.Storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds every tunable of the engine and CLI.
type Config struct {
	// Mode is the default fill mode, "instant" or "animated".
	Mode string `yaml:"mode" env:"FILLFORGE_MODE"`

	// TypingPreset names the simulator speed profile used in animated
	// mode: slow, normal, fast or instant.
	TypingPreset string `yaml:"typing_preset" env:"FILLFORGE_TYPING_PRESET"`

	// Storage selects the persistence backend, "file" or "sqlite".
	Storage string `yaml:"storage" env:"FILLFORGE_STORAGE"`

	// DataDir is where datasets and rotation state are persisted.
	// Empty means ~/.fillforge/data.
	DataDir string `yaml:"data_dir" env:"FILLFORGE_DATA_DIR"`

	// ScenarioDir holds user scenario YAML files loadable by name.
	ScenarioDir string `yaml:"scenario_dir" env:"FILLFORGE_SCENARIO_DIR"`

	// LogDir is where session logs are written. Empty means
	// ~/.fillforge/logs.
	LogDir string `yaml:"log_dir" env:"FILLFORGE_LOG_DIR"`

	// Headless launches the browser without a window for live fills.
	Headless bool `yaml:"headless" env:"FILLFORGE_HEADLESS"`

	// AllowedOrigins restricts which origins live fills may touch. Each
	// entry is a glob over the hostname, e.g. "*.example.com". Empty
	// means every origin is allowed.
	AllowedOrigins []string `yaml:"allowed_origins" env:"FILLFORGE_ALLOWED_ORIGINS" envSeparator:","`

	origins []glob.Glob
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mode:         "instant",
		TypingPreset: "normal",
		Storage:      StorageFile,
		Headless:     true,
	}
}

// DefaultPath returns ~/.fillforge/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fillforge", "config.yaml"), nil
}

// Load builds the effective configuration: defaults, overlaid by the YAML
// file at path when it exists, overlaid by FILLFORGE_* environment
// variables. An empty path uses DefaultPath, and a missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No file yet, defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize validates enumerated fields and compiles the origin allowlist.
func (c *Config) finalize() error {
	switch c.Mode {
	case "instant", "animated":
	default:
		return fmt.Errorf("invalid mode %q: must be instant or animated", c.Mode)
	}

	if _, ok := typing.Preset(c.TypingPreset); !ok {
		return fmt.Errorf("unknown typing preset %q", c.TypingPreset)
	}

	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage backend %q: must be %s or %s", c.Storage, StorageFile, StorageSQLite)
	}

	c.origins = c.origins[:0]
	for _, pattern := range c.AllowedOrigins {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid allowed origin pattern %q: %w", pattern, err)
		}
		c.origins = append(c.origins, g)
	}
	return nil
}

// OriginAllowed reports whether a hostname passes the allowlist. An empty
// allowlist admits everything.
func (c *Config) OriginAllowed(host string) bool {
	if len(c.origins) == 0 {
		return true
	}
	for _, g := range c.origins {
		if g.Match(host) {
			return true
		}
	}
	return false
}

// TypingConfig resolves the configured preset to simulator settings.
func (c *Config) TypingConfig() typing.Config {
	preset, _ := typing.Preset(c.TypingPreset)
	return preset
}

// Animated reports whether the default fill mode types values in.
func (c *Config) Animated() bool {
	return c.Mode == "animated"
}
