package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/workhours"
)

// Record kinds written to the JSON Lines file.
const (
	KindSettings = "settings"
	KindEntry    = "entry"
	KindDayType  = "daytype"
)

// record is a single line of the JSON Lines file. Which fields are set
// depends on Kind.
type record struct {
	Kind     string              `json:"kind"`
	Date     string              `json:"date,omitempty"`
	Start    string              `json:"start,omitempty"`
	End      string              `json:"end,omitempty"`
	Type     daytype.DayType     `json:"type,omitempty"`
	Settings *workhours.Settings `json:"settings,omitempty"`
}

// JSONLStore keeps the snapshot in a JSON Lines file: one settings record,
// then one record per time entry and per day-type override. When a date
// appears more than once the later line wins.
type JSONLStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONLStore returns a store backed by the file at path.
func NewJSONLStore(path string, logger *slog.Logger) *JSONLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONLStore{path: path, logger: logger}
}

// Path returns the storage file path.
func (s *JSONLStore) Path() string { return s.path }

// Describe returns a short description of the store.
func (s *JSONLStore) Describe() string { return "JSON Lines file " + s.path }

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONLStore) Close() error { return nil }

// Load reads the snapshot, skipping malformed lines with a warning.
func (s *JSONLStore) Load(ctx context.Context) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{Snapshot: snapshot.New()}, err
	}

	result, err := ReadSnapshotWithWarnings(s.path)
	if err != nil {
		return result, err
	}
	s.logger.Debug("loaded snapshot",
		"path", s.path,
		"entries", len(result.Snapshot.TimeEntries),
		"overrides", len(result.Snapshot.DayTypeMap),
		"warnings", len(result.Warnings))
	return result, nil
}

// Save backs up the current file and atomically replaces it with snap.
func (s *JSONLStore) Save(ctx context.Context, snap snapshot.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := CreateBackup(s.path); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	if err := WriteSnapshot(s.path, snap); err != nil {
		return err
	}
	s.logger.Debug("saved snapshot", "path", s.path, "entries", len(snap.TimeEntries))
	return nil
}

// ReadSnapshotWithWarnings reads a snapshot from the JSON Lines file at path
// and returns warnings about any lines that could not be used.
// Returns an empty snapshot if the file doesn't exist.
func ReadSnapshotWithWarnings(path string) (LoadResult, error) {
	result := LoadResult{
		Snapshot: snapshot.New(),
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	snap := &result.Snapshot
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if strings.TrimSpace(lineContent) == "" {
			continue
		}

		if err := applyRecord(snap, lineContent); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	snap.Normalize()
	return result, nil
}

func applyRecord(snap *snapshot.Snapshot, line string) error {
	var r record
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		return err
	}

	switch r.Kind {
	case KindSettings:
		if r.Settings == nil {
			return fmt.Errorf("settings record without settings")
		}
		snap.Settings = r.Settings.Clone()
	case KindEntry:
		if err := checkDate(r.Date); err != nil {
			return err
		}
		snap.TimeEntries[r.Date] = entry.TimeEntry{Start: r.Start, End: r.End}
	case KindDayType:
		if err := checkDate(r.Date); err != nil {
			return err
		}
		if !r.Type.Valid() {
			return fmt.Errorf("unknown day type '%s'", r.Type)
		}
		snap.DayTypeMap[r.Date] = r.Type
	default:
		return fmt.Errorf("unknown record kind '%s'", r.Kind)
	}
	return nil
}

func checkDate(date string) error {
	if _, err := time.Parse(timeutil.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date '%s'", date)
	}
	return nil
}

// WriteSnapshot writes snap to path using the atomic write pattern
// (write to a temp file, then rename).
func WriteSnapshot(path string, snap snapshot.Snapshot) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	for _, r := range records(snap) {
		if err := enc.Encode(r); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func records(snap snapshot.Snapshot) []record {
	settings := snap.Settings.Clone()
	out := []record{{Kind: KindSettings, Settings: &settings}}

	for _, date := range snap.EntryDates() {
		e := snap.TimeEntries[date]
		if e.IsEmpty() {
			continue
		}
		out = append(out, record{Kind: KindEntry, Date: date, Start: e.Start, End: e.End})
	}
	for _, date := range snap.DayTypeMap.Dates() {
		out = append(out, record{Kind: KindDayType, Date: date, Type: snap.DayTypeMap[date]})
	}
	return out
}

// StorageHealth contains information about the health status of the storage file.
type StorageHealth struct {
	TotalLines       int            // Number of non-blank lines in the storage file
	ValidRecords     int            // Number of usable records
	CorruptedRecords int            // Number of corrupted/malformed lines
	Warnings         []ParseWarning // Detailed information about each corrupted line
}

// ValidateStorage analyzes the storage file and returns health status information.
// Returns empty health status if file doesn't exist.
func ValidateStorage(path string) (StorageHealth, error) {
	health := StorageHealth{Warnings: []ParseWarning{}}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			health.TotalLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return health, err
	}

	result, err := ReadSnapshotWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.CorruptedRecords = len(result.Warnings)
	health.ValidRecords = health.TotalLines - health.CorruptedRecords
	health.Warnings = result.Warnings
	return health, nil
}
