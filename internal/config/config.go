// Package config handles TOML-based configuration loading and validation.
// The loaded Config is an immutable snapshot: width bounds are clamped into
// a hard envelope once, at load time, and never mutated afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"embedkit/internal/registry"
)

// Hard envelope for embed widths. Configured bounds outside this range are
// clamped, not rejected, so a bad config file cannot produce absurd markup.
const (
	FloorWidth   = 100
	CeilingWidth = 1024
)

// Config holds all application configuration.
type Config struct {
	MinWidth     int      `toml:"min_width"`
	MaxWidth     int      `toml:"max_width"`
	DefaultWidth int      `toml:"default_width"`
	ProbeBin     string   `toml:"probe_bin"`
	Hostname     string   `toml:"hostname"`
	Services     []string `toml:"services"` // allowlist; empty enables all builtins
	History      bool     `toml:"history"`
	Debug        bool     `toml:"debug"`

	// Custom holds user-defined service profiles from [service.<name>]
	// blocks; they overlay or extend the built-in registry.
	Custom map[string]registry.Profile `toml:"service"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MinWidth:     FloorWidth,
		MaxWidth:     CeilingWidth,
		DefaultWidth: 425,
		ProbeBin:     "ffprobe",
		Hostname:     defaultHostname(),
		History:      true,
		Debug:        false,
	}
}

func defaultHostname() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "localhost"
	}
	return host
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "embedkit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "embedkit"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Clamp()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Clamp forces the width bounds into the hard envelope and repairs an
// inverted range or an out-of-range default. Misconfigured values are
// corrected silently; the envelope is authoritative.
func (c *Config) Clamp() {
	if c.MinWidth < FloorWidth {
		c.MinWidth = FloorWidth
	}
	if c.MaxWidth > CeilingWidth || c.MaxWidth <= 0 {
		c.MaxWidth = CeilingWidth
	}
	if c.MinWidth > c.MaxWidth {
		c.MinWidth, c.MaxWidth = FloorWidth, CeilingWidth
	}
	if c.DefaultWidth < c.MinWidth {
		c.DefaultWidth = c.MinWidth
	}
	if c.DefaultWidth > c.MaxWidth {
		c.DefaultWidth = c.MaxWidth
	}
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("min_width %d exceeds max_width %d", c.MinWidth, c.MaxWidth)
	}
	if strings.TrimSpace(c.ProbeBin) == "" {
		return fmt.Errorf("probe_bin cannot be empty")
	}
	if strings.TrimSpace(c.Hostname) == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	for _, s := range c.Services {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("services allowlist contains an empty entry")
		}
	}
	return nil
}

// HistoryPath returns the path to the render history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "embedkit", "history.db"), nil
}
