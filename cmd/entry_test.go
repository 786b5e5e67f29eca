package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitSetArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		date  string
		start string
		end   string
	}{
		{"start only", []string{"09:00"}, "", "09:00", ""},
		{"start and end", []string{"09:00", "17:30"}, "", "09:00", "17:30"},
		{"12 hour times", []string{"8:45am", "5:15pm"}, "", "8:45am", "5:15pm"},
		{"date and start", []string{"2024-01-15", "09:00"}, "2024-01-15", "09:00", ""},
		{"keyword date and start", []string{"yesterday", "09:00"}, "yesterday", "09:00", ""},
		{"date start end", []string{"2024-01-15", "22:00", "02:00"}, "2024-01-15", "22:00", "02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, start, end := splitSetArgs(tt.args)
			if date != tt.date || start != tt.start || end != tt.end {
				t.Errorf("splitSetArgs(%v) = (%q, %q, %q), want (%q, %q, %q)",
					tt.args, date, start, end, tt.date, tt.start, tt.end)
			}
		})
	}
}

// newSettingsSetCmd binds the settings flags to a fresh command so that
// Changed() starts clean for every case.
func newSettingsSetCmd(t *testing.T) *cobra.Command {
	t.Helper()
	t.Cleanup(func() {
		standardFlag = ""
		workdayBreaksFlag = nil
		weekendBreaksFlag = nil
		maxWeekendHoursFlag = 0
	})

	cmd := &cobra.Command{Use: "set"}
	cmd.Flags().StringVar(&standardFlag, "standard", "", "")
	cmd.Flags().StringArrayVar(&workdayBreaksFlag, "workday-break", nil, "")
	cmd.Flags().StringArrayVar(&weekendBreaksFlag, "weekend-break", nil, "")
	cmd.Flags().Float64Var(&maxWeekendHoursFlag, "max-weekend-hours", 0, "")
	return cmd
}

func TestSettingsChanges(t *testing.T) {
	t.Run("nothing given", func(t *testing.T) {
		cmd := newSettingsSetCmd(t)
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		if c := settingsChanges(cmd); !c.IsEmpty() {
			t.Errorf("expected no changes, got %+v", c)
		}
	})

	t.Run("every flag", func(t *testing.T) {
		cmd := newSettingsSetCmd(t)
		err := cmd.ParseFlags([]string{
			"--standard", "08:30-17:00",
			"--workday-break", "12:00-13:00",
			"--workday-break", "17:00-17:30",
			"--weekend-break", "",
			"--max-weekend-hours", "6",
		})
		if err != nil {
			t.Fatal(err)
		}

		c := settingsChanges(cmd)
		if c.Standard != "08:30-17:00" {
			t.Errorf("Standard = %q", c.Standard)
		}
		if !reflect.DeepEqual(c.WorkdayBreaks, []string{"12:00-13:00", "17:00-17:30"}) {
			t.Errorf("WorkdayBreaks = %v", c.WorkdayBreaks)
		}
		if !reflect.DeepEqual(c.WeekendBreaks, []string{""}) {
			t.Errorf("WeekendBreaks = %v, want a single empty value", c.WeekendBreaks)
		}
		if c.MaxWeekendHours == nil || *c.MaxWeekendHours != 6 {
			t.Errorf("MaxWeekendHours = %v, want 6", c.MaxWeekendHours)
		}
	})

	t.Run("zero weekend cap is a change", func(t *testing.T) {
		cmd := newSettingsSetCmd(t)
		if err := cmd.ParseFlags([]string{"--max-weekend-hours", "0"}); err != nil {
			t.Fatal(err)
		}

		c := settingsChanges(cmd)
		if c.MaxWeekendHours == nil || *c.MaxWeekendHours != 0 {
			t.Errorf("MaxWeekendHours = %v, want 0", c.MaxWeekendHours)
		}
		if c.Standard != "" || c.WorkdayBreaks != nil || c.WeekendBreaks != nil {
			t.Errorf("unexpected changes: %+v", c)
		}
	})
}
