package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xolan/worktimer/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"

	// DefaultTheme is the bubbletint theme used when none is configured.
	DefaultTheme = "dracula"
)

// Valid values for the enumerated settings.
var (
	StorageBackends = []string{"jsonl", "sqlite"}
	HourFormats     = []string{"24h", "12h"}
	LogLevels       = []string{"debug", "info", "warn", "error"}
)

// Config represents the application configuration. Work-hour rules
// (standard time, breaks, weekend cap) are not part of it; they travel
// with the data so that an export carries them along.
type Config struct {
	// StorageBackend selects where data is kept: "jsonl" or "sqlite"
	StorageBackend string `toml:"storage_backend"`
	// DataDir overrides the directory holding the data file
	DataDir string `toml:"data_dir"`
	// HourFormat controls how clock times are displayed: "24h" or "12h"
	HourFormat string `toml:"hour_format"`
	// Theme is the TUI color theme (bubbletint id)
	Theme string `toml:"theme"`
	// LogLevel is the minimum level written to stderr
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		StorageBackend: "jsonl",
		DataDir:        "",
		HourFormat:     "24h",
		Theme:          DefaultTheme,
		LogLevel:       "error",
	}
}

// GetConfigPath returns the path to the config file, creating the config
// directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile("", ConfigFile)
}

// Load reads and validates the config file at path. Fields missing from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns DefaultConfig when
// the file does not exist. Any other failure is returned as an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lowercases enumerated values, trims whitespace and fills
// empty fields with their defaults.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	c.HourFormat = strings.ToLower(strings.TrimSpace(c.HourFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Theme = strings.TrimSpace(c.Theme)
	c.DataDir = strings.TrimSpace(c.DataDir)

	if c.StorageBackend == "" {
		c.StorageBackend = defaults.StorageBackend
	}
	if c.HourFormat == "" {
		c.HourFormat = defaults.HourFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.DataDir != "" {
		c.DataDir = filepath.Clean(c.DataDir)
	}
}

// Validate checks that every enumerated field holds a known value.
// Call Normalize first.
func (c Config) Validate() error {
	var errs []error
	if !contains(StorageBackends, c.StorageBackend) {
		errs = append(errs, fmt.Errorf("invalid storage_backend %q: must be one of %s",
			c.StorageBackend, strings.Join(StorageBackends, ", ")))
	}
	if !contains(HourFormats, c.HourFormat) {
		errs = append(errs, fmt.Errorf("invalid hour_format %q: must be one of %s",
			c.HourFormat, strings.Join(HourFormats, ", ")))
	}
	if !contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be one of %s",
			c.LogLevel, strings.Join(LogLevels, ", ")))
	}
	return errors.Join(errs...)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// SlogLevel converts LogLevel into a slog.Level, defaulting to error.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	}
	return slog.LevelError
}

// Save writes cfg to path as TOML with a short header.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# worktimer configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// GenerateSampleConfig returns a commented sample configuration file.
func GenerateSampleConfig() string {
	return `# worktimer configuration file
# Uncomment a line to change its default.

# Where data is stored: "jsonl" (one JSON record per line) or "sqlite"
# storage_backend = "jsonl"

# Directory holding the data file (defaults to this directory)
# data_dir = "/home/me/Documents/worktimer"

# Clock display: "24h" (17:30) or "12h" (5:30 PM)
# hour_format = "24h"

# TUI color theme, e.g. "dracula", "nord", "gruvbox_dark", "catppuccin_mocha"
# theme = "dracula"

# Log level for diagnostics on stderr: "debug", "info", "warn" or "error"
# log_level = "error"
`
}
