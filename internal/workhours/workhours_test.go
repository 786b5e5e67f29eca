package workhours

import (
	"math"
	"testing"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_DefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name          string
		entry         entry.TimeEntry
		dayType       daytype.DayType
		wantTotal     float64
		wantEffective float64
	}{
		{
			name:          "standard workday",
			entry:         entry.TimeEntry{Start: "09:00", End: "17:30"},
			dayType:       daytype.Workday,
			wantTotal:     8.5,
			wantEffective: 7.0,
		},
		{
			name:          "workday past evening break",
			entry:         entry.TimeEntry{Start: "09:00", End: "19:00"},
			dayType:       daytype.Workday,
			wantTotal:     10,
			wantEffective: 8,
		},
		{
			name:          "partially overlapping lunch",
			entry:         entry.TimeEntry{Start: "12:30", End: "15:00"},
			dayType:       daytype.Workday,
			wantTotal:     2.5,
			wantEffective: 1.5,
		},
		{
			name:          "entirely inside a break",
			entry:         entry.TimeEntry{Start: "12:15", End: "13:00"},
			dayType:       daytype.Workday,
			wantTotal:     0.75,
			wantEffective: 0,
		},
		{
			name:          "morning only, breaks outside",
			entry:         entry.TimeEntry{Start: "08:00", End: "11:00"},
			dayType:       daytype.Workday,
			wantTotal:     3,
			wantEffective: 3,
		},
		{
			name:          "restday-work uses workday breaks",
			entry:         entry.TimeEntry{Start: "09:00", End: "18:00"},
			dayType:       daytype.RestdayWork,
			wantTotal:     9,
			wantEffective: 7,
		},
		{
			name:          "weekend uses weekend breaks",
			entry:         entry.TimeEntry{Start: "09:00", End: "18:00"},
			dayType:       daytype.Weekend,
			wantTotal:     9,
			wantEffective: 7.5,
		},
		{
			name:          "weekend capped",
			entry:         entry.TimeEntry{Start: "08:00", End: "20:00"},
			dayType:       daytype.Weekend,
			wantTotal:     12,
			wantEffective: 8,
		},
		{
			name:          "holiday capped",
			entry:         entry.TimeEntry{Start: "06:00", End: "22:00"},
			dayType:       daytype.Holiday,
			wantTotal:     16,
			wantEffective: 8,
		},
		{
			name:          "workday never capped",
			entry:         entry.TimeEntry{Start: "06:00", End: "22:00"},
			dayType:       daytype.Workday,
			wantTotal:     16,
			wantEffective: 14,
		},
		{
			name:          "overnight shift skips daytime breaks",
			entry:         entry.TimeEntry{Start: "22:00", End: "06:00"},
			dayType:       daytype.Workday,
			wantTotal:     8,
			wantEffective: 8,
		},
		{
			name:          "equal start and end",
			entry:         entry.TimeEntry{Start: "09:00", End: "09:00"},
			dayType:       daytype.Workday,
			wantTotal:     0,
			wantEffective: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.entry, tt.dayType, settings)
			if !almostEqual(got.TotalHours, tt.wantTotal) {
				t.Errorf("TotalHours = %v, want %v", got.TotalHours, tt.wantTotal)
			}
			if !almostEqual(got.EffectiveHours, tt.wantEffective) {
				t.Errorf("EffectiveHours = %v, want %v", got.EffectiveHours, tt.wantEffective)
			}
		})
	}
}

func TestCompute_MissingOrMalformed(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		name  string
		entry entry.TimeEntry
	}{
		{"empty", entry.TimeEntry{}},
		{"start only", entry.TimeEntry{Start: "09:00"}},
		{"end only", entry.TimeEntry{End: "17:00"}},
		{"out of range", entry.TimeEntry{Start: "25:61", End: "17:00"}},
		{"wrong shape", entry.TimeEntry{Start: "9:00", End: "17:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.entry, daytype.Workday, settings)
			if got != (Result{}) {
				t.Errorf("Compute(%+v) = %+v, want zero result", tt.entry, got)
			}
		})
	}
}

func TestCompute_SkipsUnparseableBreaks(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkdayRestTimes = []Interval{
		{Start: "nope", End: "13:00"},
		{Start: "12:00", End: "13:00"},
	}

	got := Compute(entry.TimeEntry{Start: "09:00", End: "17:00"}, daytype.Workday, settings)
	if !almostEqual(got.EffectiveHours, 7) {
		t.Errorf("EffectiveHours = %v, want 7", got.EffectiveHours)
	}
}

func TestCompute_OverlappingBreaksSubtractTwice(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkdayRestTimes = []Interval{
		{Start: "12:00", End: "13:00"},
		{Start: "12:30", End: "13:30"},
	}

	got := Compute(entry.TimeEntry{Start: "09:00", End: "17:00"}, daytype.Workday, settings)
	if !almostEqual(got.EffectiveHours, 6) {
		t.Errorf("EffectiveHours = %v, want 6", got.EffectiveHours)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkdayRestTimes = []Interval{
		{Start: "09:00", End: "10:00"},
		{Start: "09:00", End: "10:00"},
		{Start: "09:00", End: "10:00"},
	}

	got := Compute(entry.TimeEntry{Start: "09:00", End: "10:00"}, daytype.Workday, settings)
	if got.EffectiveHours != 0 {
		t.Errorf("EffectiveHours = %v, want 0", got.EffectiveHours)
	}
}

func TestCompute_AppliesCapVerbatim(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxWeekendHours = 2.5

	got := Compute(entry.TimeEntry{Start: "09:00", End: "12:00"}, daytype.Weekend, settings)
	if !almostEqual(got.EffectiveHours, 2.5) {
		t.Errorf("EffectiveHours = %v, want 2.5", got.EffectiveHours)
	}
}

func TestSettings_Validate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad standard start", func(s *Settings) { s.StandardWorkTime.Start = "9" }},
		{"bad standard end", func(s *Settings) { s.StandardWorkTime.End = "" }},
		{"negative cap", func(s *Settings) { s.MaxWeekendHours = -1 }},
		{"break reversed", func(s *Settings) { s.WorkdayRestTimes = []Interval{{Start: "13:00", End: "12:00"}} }},
		{"break unparseable", func(s *Settings) { s.WeekendRestTimes = []Interval{{Start: "x", End: "12:00"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSettings_Clone(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.WorkdayRestTimes[0].Start = "11:00"

	if s.WorkdayRestTimes[0].Start != "12:00" {
		t.Error("Clone should deep-copy break slices")
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("12:00-13:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Start != "12:00" || iv.End != "13:30" {
		t.Errorf("ParseInterval = %+v", iv)
	}
	if iv.String() != "12:00-13:30" {
		t.Errorf("String() = %q", iv.String())
	}

	for _, bad := range []string{"", "12:00", "12-13", "12:00-", "ab:cd-12:00"} {
		if _, err := ParseInterval(bad); err == nil {
			t.Errorf("ParseInterval(%q) expected error", bad)
		}
	}
}

func TestParseIntervalList(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"", []string{}, false},
		{"12:00-13:30", []string{"12:00-13:30"}, false},
		{"12:00-13:30, 17:30-18:00", []string{"12:00-13:30", "17:30-18:00"}, false},
		{" 12:00-13:30 ,, ", []string{"12:00-13:30"}, false},
		{"12:00-13:30, lunch", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIntervalList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseIntervalList(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			strs := IntervalStrings(got)
			if len(strs) != len(tt.want) {
				t.Fatalf("ParseIntervalList(%q) = %v, want %v", tt.input, strs, tt.want)
			}
			for i := range strs {
				if strs[i] != tt.want[i] {
					t.Errorf("interval %d = %q, want %q", i, strs[i], tt.want[i])
				}
			}
		})
	}
}
