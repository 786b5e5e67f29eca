package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/worktimer/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), ConfigFile)
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StorageBackend != "jsonl" {
		t.Errorf("DefaultConfig().StorageBackend = %q, expected %q", cfg.StorageBackend, "jsonl")
	}
	if cfg.HourFormat != "24h" {
		t.Errorf("DefaultConfig().HourFormat = %q, expected %q", cfg.HourFormat, "24h")
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("DefaultConfig().Theme = %q, expected %q", cfg.Theme, DefaultTheme)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("DefaultConfig().LogLevel = %q, expected %q", cfg.LogLevel, "error")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expected      Config
	}{
		{
			name: "all fields set",
			configContent: `storage_backend = "sqlite"
data_dir = "/srv/worktimer/"
hour_format = "12h"
theme = "nord"
log_level = "debug"`,
			expected: Config{
				StorageBackend: "sqlite",
				DataDir:        "/srv/worktimer",
				HourFormat:     "12h",
				Theme:          "nord",
				LogLevel:       "debug",
			},
		},
		{
			name:          "partial config keeps defaults",
			configContent: `hour_format = "12h"`,
			expected: Config{
				StorageBackend: "jsonl",
				HourFormat:     "12h",
				Theme:          DefaultTheme,
				LogLevel:       "error",
			},
		},
		{
			name: "mixed case normalized",
			configContent: `storage_backend = " SQLite "
hour_format = "24H"
log_level = "Warn"`,
			expected: Config{
				StorageBackend: "sqlite",
				HourFormat:     "24h",
				Theme:          DefaultTheme,
				LogLevel:       "warn",
			},
		},
		{
			name:          "empty file",
			configContent: "",
			expected:      DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(createTempConfigFile(t, tt.configContent))
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("Load() = %+v, expected %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml")); err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `hour_format = "12h`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `hour_format = 12h`},
		{"unclosed brackets", "[section\nhour_format = \"12h\""},
		{"wrong type", `theme = 42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		errorSubstring string
	}{
		{"unknown backend", `storage_backend = "postgres"`, "invalid storage_backend"},
		{"unknown hour format", `hour_format = "ampm"`, "invalid hour_format"},
		{"unknown log level", `log_level = "trace"`, "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))
			if err == nil {
				t.Fatal("Load() should reject invalid value")
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("error = %v, expected to contain %q", err, tt.errorSubstring)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Config{StorageBackend: "csv", HourFormat: "36h", LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, field := range []string{"storage_backend", "hour_format", "log_level"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error should mention %s, got: %v", field, err)
		}
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	_, err := LoadOrDefault(createTempConfigFile(t, `hour_format = "13h"`))
	if err == nil {
		t.Fatal("LoadOrDefault() should return error for invalid config file")
	}
	if !strings.Contains(err.Error(), "invalid hour_format") {
		t.Errorf("Error should mention invalid hour_format, got: %v", err)
	}
}

func TestLoadOrDefault_PermissionError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root")
	}
	tmpFile := createTempConfigFile(t, `hour_format = "24h"`)
	if err := os.Chmod(tmpFile, 0000); err != nil {
		t.Skipf("Cannot change file permissions: %v", err)
	}
	defer func() { _ = os.Chmod(tmpFile, 0644) }()

	if _, err := LoadOrDefault(tmpFile); err == nil {
		t.Error("LoadOrDefault() should return error for unreadable file")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	want := Config{
		StorageBackend: "sqlite",
		DataDir:        "/data",
		HourFormat:     "12h",
		Theme:          "nord",
		LogLevel:       "info",
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Errorf("Load(Save(cfg)) = %+v, expected %+v", got, want)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (Config{LogLevel: tt.level}).SlogLevel(); got != tt.expected {
				t.Errorf("SlogLevel() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	for _, expected := range []string{
		"# worktimer configuration file",
		"# storage_backend",
		"# data_dir",
		"# hour_format",
		"# theme",
		"# log_level",
		"sqlite",
		"12h",
	} {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}

	// The sample must load as the defaults, since everything is commented out.
	cfg, err := Load(createTempConfigFile(t, content))
	if err != nil {
		t.Fatalf("Load(sample) error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(sample) = %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, osutil.AppName, ConfigFile) {
		t.Errorf("GetConfigPath() = %q", path)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}
