package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
)

func TestReadSnapshot_NonExistentFile(t *testing.T) {
	result, err := ReadSnapshotWithWarnings(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadSnapshotWithWarnings() returned unexpected error: %v", err)
	}
	if len(result.Snapshot.TimeEntries) != 0 || len(result.Warnings) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Snapshot.Settings.MaxWeekendHours != 8 {
		t.Errorf("expected default settings, got %+v", result.Snapshot.Settings)
	}
}

func TestReadSnapshot_Records(t *testing.T) {
	content := `{"kind":"settings","settings":{"standardWorkTime":{"start":"08:00","end":"16:30"},"workdayRestTimes":[],"weekendRestTimes":[],"maxWeekendHours":4}}
{"kind":"entry","date":"2024-01-10","start":"09:00","end":"18:00"}
{"kind":"daytype","date":"2024-01-01","type":"holiday"}

{"kind":"entry","date":"2024-01-11","start":"10:00"}
`
	result, err := ReadSnapshotWithWarnings(createTempStorage(t, content))
	if err != nil {
		t.Fatalf("ReadSnapshotWithWarnings() error: %v", err)
	}

	snap := result.Snapshot
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if snap.Settings.StandardWorkTime.End != "16:30" || snap.Settings.MaxWeekendHours != 4 {
		t.Errorf("settings not loaded: %+v", snap.Settings)
	}
	if got := snap.TimeEntries["2024-01-10"]; got != (entry.TimeEntry{Start: "09:00", End: "18:00"}) {
		t.Errorf("entry 2024-01-10 = %+v", got)
	}
	if got := snap.TimeEntries["2024-01-11"]; got != (entry.TimeEntry{Start: "10:00"}) {
		t.Errorf("entry 2024-01-11 = %+v", got)
	}
	if snap.DayTypeMap["2024-01-01"] != daytype.Holiday {
		t.Errorf("override 2024-01-01 = %q", snap.DayTypeMap["2024-01-01"])
	}
}

func TestReadSnapshot_LaterLinesWin(t *testing.T) {
	content := `{"kind":"entry","date":"2024-01-10","start":"09:00","end":"18:00"}
{"kind":"entry","date":"2024-01-10","start":"08:00","end":"17:00"}
{"kind":"daytype","date":"2024-01-06","type":"restday-work"}
{"kind":"daytype","date":"2024-01-06","type":"weekend"}
{"kind":"entry","date":"2024-01-12","start":"08:00","end":"17:00"}
{"kind":"entry","date":"2024-01-12"}
`
	result, err := ReadSnapshotWithWarnings(createTempStorage(t, content))
	if err != nil {
		t.Fatalf("ReadSnapshotWithWarnings() error: %v", err)
	}

	snap := result.Snapshot
	if got := snap.TimeEntries["2024-01-10"]; got.Start != "08:00" {
		t.Errorf("later entry should win, got %+v", got)
	}
	// 2024-01-06 is a Saturday, so the final "weekend" equals the default.
	if _, ok := snap.DayTypeMap["2024-01-06"]; ok {
		t.Errorf("override equal to the default should be dropped")
	}
	if _, ok := snap.TimeEntries["2024-01-12"]; ok {
		t.Errorf("empty entry should be dropped")
	}
}

func TestReadSnapshot_Malformed(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantEntries  int
		wantWarnings []int
	}{
		{
			name: "invalid json",
			content: `{"kind":"entry","date":"2024-01-10","start":"09:00","end":"18:00"}
{not json}
{"kind":"entry","date":"2024-01-11","start":"09:00","end":"18:00"}
`,
			wantEntries:  2,
			wantWarnings: []int{2},
		},
		{
			name: "unknown kind",
			content: `{"kind":"note","date":"2024-01-10"}
{"kind":"entry","date":"2024-01-11","start":"09:00","end":"18:00"}
`,
			wantEntries:  1,
			wantWarnings: []int{1},
		},
		{
			name: "bad dates and day types",
			content: `{"kind":"entry","date":"10/01/2024","start":"09:00","end":"18:00"}
{"kind":"daytype","date":"2024-01-01","type":"vacation"}
{"kind":"daytype","date":"2024-13-01","type":"holiday"}
{"kind":"settings"}
`,
			wantEntries:  0,
			wantWarnings: []int{1, 2, 3, 4},
		},
		{
			name:         "truncated line",
			content:      `{"kind":"entry","date":"2024-01-10","start":"09:`,
			wantEntries:  0,
			wantWarnings: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ReadSnapshotWithWarnings(createTempStorage(t, tt.content))
			if err != nil {
				t.Fatalf("ReadSnapshotWithWarnings() error: %v", err)
			}
			if len(result.Snapshot.TimeEntries) != tt.wantEntries {
				t.Errorf("entries = %d, want %d", len(result.Snapshot.TimeEntries), tt.wantEntries)
			}
			if len(result.Warnings) != len(tt.wantWarnings) {
				t.Fatalf("warnings = %v, want lines %v", result.Warnings, tt.wantWarnings)
			}
			for i, line := range tt.wantWarnings {
				w := result.Warnings[i]
				if w.LineNumber != line {
					t.Errorf("warning %d line = %d, want %d", i, w.LineNumber, line)
				}
				if w.Content == "" || w.Error == "" {
					t.Errorf("warning %d missing details: %+v", i, w)
				}
			}
		})
	}
}

func TestReadSnapshot_PermissionError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root")
	}
	path := createTempStorage(t, `{"kind":"entry","date":"2024-01-10","start":"09:00"}`)
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer func() { _ = os.Chmod(path, 0644) }()

	if _, err := ReadSnapshotWithWarnings(path); err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestWriteSnapshot(t *testing.T) {
	path := createTempStorage(t, "")
	snap := sampleSnapshot()

	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("WriteSnapshot() error: %v", err)
	}
	if fileExists(path + ".tmp") {
		t.Error("temp file should be renamed away")
	}

	lines := strings.Split(strings.TrimSpace(readFileContent(t, path)), "\n")
	// settings + 3 entries + 2 overrides
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.Contains(lines[0], `"kind":"settings"`) {
		t.Errorf("first line should be settings, got %s", lines[0])
	}
	if !strings.Contains(lines[1], `"date":"2024-01-10"`) {
		t.Errorf("entries should be written in date order, got %s", lines[1])
	}
	if !strings.Contains(lines[5], `"type":"restday-work"`) {
		t.Errorf("last line should be the 2024-01-13 override, got %s", lines[5])
	}
}

func TestWriteSnapshot_Overwrites(t *testing.T) {
	path := createTempStorage(t, "old content\n")
	if err := WriteSnapshot(path, snapshot.New()); err != nil {
		t.Fatalf("WriteSnapshot() error: %v", err)
	}
	if strings.Contains(readFileContent(t, path), "old content") {
		t.Error("WriteSnapshot() should replace the file")
	}
}

func TestWriteSnapshot_OpenError(t *testing.T) {
	badPath := filepath.Join(t.TempDir(), "missing", "dir", DataFile)
	if err := WriteSnapshot(badPath, snapshot.New()); err == nil {
		t.Error("WriteSnapshot() should fail for a missing directory")
	}
}

func TestJSONLStore_SaveKeepsCorruptLinesInBackup(t *testing.T) {
	content := "{broken\n" + `{"kind":"entry","date":"2024-01-10","start":"09:00","end":"18:00"}` + "\n"
	path := createTempStorage(t, content)
	s := NewJSONLStore(path, nil)

	result, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}

	if err := s.Save(context.Background(), result.Snapshot); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := readFileContent(t, GetBackupPath(path, 1)); got != content {
		t.Errorf("backup = %q, want original content", got)
	}
	if strings.Contains(readFileContent(t, path), "{broken") {
		t.Error("saved file should not contain the corrupt line")
	}
}

func TestValidateStorage(t *testing.T) {
	content := `{"kind":"settings","settings":{"standardWorkTime":{"start":"09:00","end":"17:30"},"maxWeekendHours":8}}
{"kind":"entry","date":"2024-01-10","start":"09:00","end":"18:00"}
garbage

{"kind":"daytype","date":"2024-01-01","type":"nope"}
`
	health, err := ValidateStorage(createTempStorage(t, content))
	if err != nil {
		t.Fatalf("ValidateStorage() error: %v", err)
	}
	if health.TotalLines != 4 {
		t.Errorf("TotalLines = %d, want 4", health.TotalLines)
	}
	if health.ValidRecords != 2 {
		t.Errorf("ValidRecords = %d, want 2", health.ValidRecords)
	}
	if health.CorruptedRecords != 2 || len(health.Warnings) != 2 {
		t.Errorf("CorruptedRecords = %d, warnings = %d, want 2", health.CorruptedRecords, len(health.Warnings))
	}
}

func TestValidateStorage_NonExistentFile(t *testing.T) {
	health, err := ValidateStorage(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ValidateStorage() error: %v", err)
	}
	if health.TotalLines != 0 || health.CorruptedRecords != 0 {
		t.Errorf("expected empty health, got %+v", health)
	}
}
