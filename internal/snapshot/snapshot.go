// Package snapshot defines the persisted state of the application (time
// entries, day-type overrides and settings) and its import/export codecs.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/workhours"
)

// SchemaVersion is written into every exported document.
const SchemaVersion = 1

// Format is an import/export document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat converts user input ("json", "yaml", "yml") into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w '%s' (use json or yaml)", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Snapshot is the complete persisted state.
type Snapshot struct {
	SchemaVersion int                        `json:"schemaVersion" yaml:"schema_version"`
	TimeEntries   map[string]entry.TimeEntry `json:"timeEntries" yaml:"time_entries"`
	DayTypeMap    daytype.Overrides          `json:"dayTypeMap" yaml:"day_type_map"`
	Settings      workhours.Settings         `json:"settings" yaml:"settings"`
}

// New returns an empty snapshot with default settings.
func New() Snapshot {
	return Snapshot{
		SchemaVersion: SchemaVersion,
		TimeEntries:   make(map[string]entry.TimeEntry),
		DayTypeMap:    make(daytype.Overrides),
		Settings:      workhours.DefaultSettings(),
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		SchemaVersion: s.SchemaVersion,
		TimeEntries:   make(map[string]entry.TimeEntry, len(s.TimeEntries)),
		DayTypeMap:    s.DayTypeMap.Clone(),
		Settings:      s.Settings.Clone(),
	}
	for k, v := range s.TimeEntries {
		c.TimeEntries[k] = v
	}
	return c
}

// EntryDates returns the dates with recorded entries, ascending.
func (s Snapshot) EntryDates() []string {
	dates := make([]string, 0, len(s.TimeEntries))
	for d := range s.TimeEntries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Months returns the "yyyy-MM" keys of every month that has an entry or an
// override, ascending.
func (s Snapshot) Months() []string {
	seen := make(map[string]bool)
	for d := range s.TimeEntries {
		if len(d) >= 7 {
			seen[d[:7]] = true
		}
	}
	for d := range s.DayTypeMap {
		if len(d) >= 7 {
			seen[d[:7]] = true
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// Normalize fills nil maps, drops empty entries and removes redundant or
// invalid day-type overrides. Settings are left as they are.
func (s *Snapshot) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	if s.TimeEntries == nil {
		s.TimeEntries = make(map[string]entry.TimeEntry)
	}
	if s.DayTypeMap == nil {
		s.DayTypeMap = make(daytype.Overrides)
	}
	for d, e := range s.TimeEntries {
		if e.IsEmpty() {
			delete(s.TimeEntries, d)
		}
	}
	s.DayTypeMap.Normalize()
}

// Validate reports structural problems that make a document unusable:
// unparseable dates and unknown day types.
func (s Snapshot) Validate() error {
	var errs []error
	for d := range s.TimeEntries {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			errs = append(errs, fmt.Errorf("time entry has invalid date '%s'", d))
		}
	}
	for d, t := range s.DayTypeMap {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			errs = append(errs, fmt.Errorf("day type has invalid date '%s'", d))
		}
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("day type for %s is unknown: '%s'", d, t))
		}
	}
	if s.SchemaVersion > SchemaVersion {
		errs = append(errs, fmt.Errorf("schema version %d is newer than supported version %d", s.SchemaVersion, SchemaVersion))
	}
	return errors.Join(errs...)
}

// Encode writes s to w in the given format.
func Encode(w io.Writer, s Snapshot, f Format) error {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w '%s'", ErrUnknownFormat, f)
}

// Decode reads a snapshot from r. The result is validated and normalized.
// Settings missing from the document fall back to the defaults.
func Decode(r io.Reader, f Format) (Snapshot, error) {
	s := Snapshot{Settings: workhours.DefaultSettings()}

	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return Snapshot{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return Snapshot{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("%w '%s'", ErrUnknownFormat, f)
	}

	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	s.Normalize()
	return s, nil
}

// ExportFileName returns the default export file name for the given day,
// e.g. "worktimer-data-20240131.json".
func ExportFileName(now time.Time, f Format) string {
	return fmt.Sprintf("worktimer-data-%s.%s", now.Format("20060102"), f.Extension())
}
