package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/osutil"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/workhours"
)

// Helper to create a temporary storage file with content
func createTempStorage(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), DataFile)
	if content != "" {
		if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp storage file: %v", err)
		}
	}
	return tmpFile
}

// Helper to check if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Helper to read file content
func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func sampleSnapshot() snapshot.Snapshot {
	s := snapshot.New()
	s.TimeEntries["2024-01-10"] = entry.TimeEntry{Start: "09:00", End: "18:30"}
	s.TimeEntries["2024-01-11"] = entry.TimeEntry{Start: "08:45", End: ""}
	s.TimeEntries["2024-01-13"] = entry.TimeEntry{Start: "10:00", End: "15:00"}
	s.DayTypeMap.Set("2024-01-01", daytype.Holiday)
	s.DayTypeMap.Set("2024-01-13", daytype.RestdayWork)
	s.Settings.MaxWeekendHours = 6
	s.Settings.WorkdayRestTimes = []workhours.Interval{{Start: "12:00", End: "13:00"}}
	return s
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

func TestGetStoragePath(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	tests := []struct {
		backend string
		dataDir string
		want    string
	}{
		{"", "", filepath.Join(tmpDir, osutil.AppName, DataFile)},
		{BackendJSONL, "", filepath.Join(tmpDir, osutil.AppName, DataFile)},
		{BackendSQLite, "", filepath.Join(tmpDir, osutil.AppName, DatabaseFile)},
		{BackendJSONL, "/data", filepath.Join("/data", DataFile)},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"|"+tt.dataDir, func(t *testing.T) {
			got, err := GetStoragePath(tt.backend, tt.dataDir)
			if err != nil {
				t.Fatalf("GetStoragePath() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("GetStoragePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetStoragePath_Errors(t *testing.T) {
	defer osutil.ResetProvider()

	if _, err := GetStoragePath("csv", ""); err == nil {
		t.Error("GetStoragePath() should reject unknown backend")
	}

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})
	if _, err := GetStoragePath(BackendJSONL, ""); err == nil {
		t.Error("GetStoragePath() should return error when UserConfigDir fails")
	}

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "/tmp", nil },
		mkdirAllFn:      func(string, os.FileMode) error { return os.ErrPermission },
	})
	if _, err := GetStoragePath(BackendJSONL, ""); err == nil {
		t.Error("GetStoragePath() should return error when MkdirAll fails")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendJSONL, dir, nil)
	if err != nil {
		t.Fatalf("Open(jsonl) error: %v", err)
	}
	if _, ok := s.(*JSONLStore); !ok {
		t.Errorf("Open(jsonl) returned %T", s)
	}

	s, err = Open(BackendSQLite, dir, nil)
	if err != nil {
		t.Fatalf("Open(sqlite) error: %v", err)
	}
	defer func() { _ = s.Close() }()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) returned %T", s)
	}
	if !strings.Contains(s.Describe(), DatabaseFile) {
		t.Errorf("Describe() = %q", s.Describe())
	}
}

// Both backends must return exactly what was saved.
func TestStores_RoundTrip(t *testing.T) {
	for _, backend := range []string{BackendJSONL, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(backend, t.TempDir(), nil)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer func() { _ = s.Close() }()

			want := sampleSnapshot()
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if len(got.Warnings) != 0 {
				t.Errorf("Load() warnings = %v", got.Warnings)
			}
			if !reflect.DeepEqual(got.Snapshot, want) {
				t.Errorf("Load() = %+v, want %+v", got.Snapshot, want)
			}
		})
	}
}

func TestStores_LoadEmpty(t *testing.T) {
	for _, backend := range []string{BackendJSONL, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, t.TempDir(), nil)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer func() { _ = s.Close() }()

			got, err := s.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got.Snapshot, snapshot.New()) {
				t.Errorf("Load() on empty store = %+v, want defaults", got.Snapshot)
			}
		})
	}
}

func TestStores_SaveCreatesBackup(t *testing.T) {
	for _, backend := range []string{BackendJSONL, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(backend, t.TempDir(), nil)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer func() { _ = s.Close() }()

			first := sampleSnapshot()
			if err := s.Save(ctx, first); err != nil {
				t.Fatalf("first Save() error: %v", err)
			}
			if err := s.Save(ctx, snapshot.New()); err != nil {
				t.Fatalf("second Save() error: %v", err)
			}

			backups, err := ListBackups(s.Path())
			if err != nil {
				t.Fatalf("ListBackups() error: %v", err)
			}
			if len(backups) == 0 {
				t.Fatal("Save() should leave a backup of the previous state")
			}

			if err := s.Close(); err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			if err := RestoreBackup(s.Path(), 1); err != nil {
				t.Fatalf("RestoreBackup() error: %v", err)
			}

			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() after restore error: %v", err)
			}
			if !reflect.DeepEqual(got.Snapshot, first) {
				t.Errorf("restored snapshot = %+v, want %+v", got.Snapshot, first)
			}
		})
	}
}

func TestStores_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewJSONLStore(filepath.Join(t.TempDir(), DataFile), nil)
	if err := s.Save(ctx, snapshot.New()); err == nil {
		t.Error("Save() with cancelled context should fail")
	}
	if _, err := s.Load(ctx); err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}
