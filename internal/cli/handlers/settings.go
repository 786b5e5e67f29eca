package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/workhours"
)

// SettingsChanges holds the settings given on the command line. Nil or
// empty fields are left unchanged; a non-nil empty break list removes all
// breaks.
type SettingsChanges struct {
	Standard        string
	WorkdayBreaks   []string
	WeekendBreaks   []string
	MaxWeekendHours *float64
}

// IsEmpty reports whether no change was requested.
func (c SettingsChanges) IsEmpty() bool {
	return c.Standard == "" && c.WorkdayBreaks == nil && c.WeekendBreaks == nil && c.MaxWeekendHours == nil
}

func (c SettingsChanges) apply(s *workhours.Settings) error {
	var errs []error
	if c.Standard != "" {
		iv, err := workhours.ParseInterval(c.Standard)
		if err != nil {
			errs = append(errs, fmt.Errorf("standard work time: %w", err))
		} else {
			s.StandardWorkTime = iv
		}
	}
	if c.WorkdayBreaks != nil {
		breaks, err := parseBreaks(c.WorkdayBreaks)
		if err != nil {
			errs = append(errs, fmt.Errorf("workday breaks: %w", err))
		} else {
			s.WorkdayRestTimes = breaks
		}
	}
	if c.WeekendBreaks != nil {
		breaks, err := parseBreaks(c.WeekendBreaks)
		if err != nil {
			errs = append(errs, fmt.Errorf("weekend breaks: %w", err))
		} else {
			s.WeekendRestTimes = breaks
		}
	}
	if c.MaxWeekendHours != nil {
		s.MaxWeekendHours = *c.MaxWeekendHours
	}
	return errors.Join(errs...)
}

func parseBreaks(values []string) ([]workhours.Interval, error) {
	return workhours.ParseIntervalList(strings.Join(values, ","))
}

// ShowSettings prints the work-hour settings.
func ShowSettings(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	s, err := deps.Services.Settings.Get(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	printSettings(deps, s)
}

// UpdateSettings applies changes to the work-hour settings.
func UpdateSettings(deps *cli.Deps, changes SettingsChanges) {
	if !deps.Ready() {
		return
	}

	if changes.IsEmpty() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one setting flag is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  worktimer settings set --standard 09:00-17:30")
		_, _ = fmt.Fprintln(deps.Stderr, "  worktimer settings set --workday-break 12:00-13:30 --workday-break 17:30-18:00")
		_, _ = fmt.Fprintln(deps.Stderr, "  worktimer settings set --max-weekend-hours 6")
		deps.Exit(1)
		return
	}

	s, err := deps.Services.Settings.Update(deps.Context(), changes.apply)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Settings were not changed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Times use HH:mm and intervals HH:mm-HH:mm (e.g., 12:00-13:30)")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Settings updated")
	printSettings(deps, s)
}

// ResetSettings restores the default work-hour settings.
func ResetSettings(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	s, err := deps.Services.Settings.Reset(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Settings reset to defaults")
	printSettings(deps, s)
}

func printSettings(deps *cli.Deps, s workhours.Settings) {
	hourFormat := deps.Config.HourFormat
	_, _ = fmt.Fprintln(deps.Stdout, "Work hour settings:")
	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	_, _ = fmt.Fprintf(deps.Stdout, "Standard work time: %s\n",
		cli.FormatEntryRange(s.StandardWorkTime.Start, s.StandardWorkTime.End, hourFormat))
	_, _ = fmt.Fprintf(deps.Stdout, "Workday breaks:     %s\n", formatBreaks(s.WorkdayRestTimes, hourFormat))
	_, _ = fmt.Fprintf(deps.Stdout, "Weekend breaks:     %s\n", formatBreaks(s.WeekendRestTimes, hourFormat))
	_, _ = fmt.Fprintf(deps.Stdout, "Max weekend hours:  %s\n", cli.FormatHours(s.MaxWeekendHours))
}

func formatBreaks(breaks []workhours.Interval, hourFormat string) string {
	if len(breaks) == 0 {
		return "none"
	}
	parts := make([]string, len(breaks))
	for i, b := range breaks {
		parts[i] = cli.FormatEntryRange(b.Start, b.End, hourFormat)
	}
	return strings.Join(parts, ", ")
}
