package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
)

func TestExportData_Stdout(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)

	ExportData(deps, "-", "")

	assertExit(t, exitCode, 0)
	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, stdout.String())
	}
	entries, ok := doc["timeEntries"].(map[string]any)
	if !ok || len(entries) != 2 {
		t.Errorf("timeEntries = %v", doc["timeEntries"])
	}
}

func TestExportData_FileFormatFromExtension(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)
	path := filepath.Join(t.TempDir(), "data.yml")

	ExportData(deps, path, "")

	assertExit(t, exitCode, 0)
	assertContains(t, stdout.String(), "Exported data to "+path)
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	snap, err := snapshot.Decode(f, snapshot.FormatYAML)
	if err != nil {
		t.Fatalf("export is not readable YAML: %v", err)
	}
	want := map[string]entry.TimeEntry{
		"2024-01-08": {Start: "09:00", End: "18:30"},
		"2024-01-09": {Start: "08:00", End: "18:30"},
	}
	if !reflect.DeepEqual(snap.TimeEntries, want) {
		t.Errorf("TimeEntries = %v, want %v", snap.TimeEntries, want)
	}
}

func TestExportData_UnknownFormat(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ExportData(deps, "-", "csv")

	assertExit(t, exitCode, 1)
	assertContains(t, stderr.String(), "unknown format", "json, yaml")
}

func TestImportData(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)
	path := filepath.Join(t.TempDir(), "import.json")
	doc := `{"timeEntries":{"2024-02-05":{"start":"09:00","end":"17:00"}},"dayTypeMap":{"2024-02-10":"restday-work"}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	deps.Stdin = strings.NewReader("y\n")

	ImportData(deps, path, "", false)

	assertExit(t, exitCode, 0)
	assertContains(t, stdout.String(),
		"Imported 1 entry and 1 day type override",
		"Months: 2024-02",
		"worktimer restore")

	rec, err := deps.Services.Entry.Get(context.Background(), "2024-01-08")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !rec.Entry.IsEmpty() {
		t.Errorf("import should replace existing entries, got %+v", rec.Entry)
	}
}

func TestImportData_Cancelled(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)
	deps.Stdin = strings.NewReader("n\n")

	ImportData(deps, "whatever.json", "", false)

	assertExit(t, exitCode, 0)
	assertContains(t, stdout.String(), "Import cancelled")
}

func TestImportData_Invalid(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"dayTypeMap":{"2024-01-01":"vacation"}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ImportData(deps, path, "", true)

	assertExit(t, exitCode, 1)
	assertContains(t, stderr.String(), "Failed to import", "Details:")
}

func TestImportData_UnknownFormat(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ImportData(deps, "data.json", "xml", true)

	assertExit(t, exitCode, 1)
	assertContains(t, stderr.String(), "unknown format", "Hint: Supported formats")
}

func TestResetData(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)

	ResetData(deps, true)

	assertExit(t, exitCode, 0)
	assertContains(t, stdout.String(), "All data reset")

	months, err := deps.Services.Dashboard.Months(context.Background())
	if err != nil {
		t.Fatalf("Months() error: %v", err)
	}
	if len(months) != 0 {
		t.Errorf("expected no data after reset, got %v", months)
	}
}

func TestResetData_Cancelled(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)

	ResetData(deps, false)

	assertExit(t, exitCode, 0)
	assertContains(t, stdout.String(), "Reset cancelled")
}
