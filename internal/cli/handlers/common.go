// Package handlers implements the worktimer commands on top of the
// service layer. Every handler writes to deps.Stdout and deps.Stderr and
// calls deps.Exit(1) on failure.
package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/service"
)

const (
	ruleWidth = 50
	dayLayout = "Mon, Jan 2, 2006"
)

func rule(char string) string {
	return strings.Repeat(char, ruleWidth)
}

// fail prints err with a hint matched to its kind and exits with status 1.
func fail(deps *cli.Deps, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return "Use YYYY-MM-DD, DD/MM/YYYY, 'today' or 'yesterday'"
	case errors.Is(err, service.ErrInvalidTime):
		return "Use HH:mm (e.g., 09:00) or a 12-hour time (e.g., 1:30pm)"
	case errors.Is(err, service.ErrInvalidDayType):
		return "Valid day types: workday, weekend, holiday, restday-work"
	case errors.Is(err, service.ErrUnknownFormat):
		return "Supported formats: json, yaml"
	case errors.Is(err, service.ErrIncompleteEntry):
		return "Clock in first with 'worktimer in'"
	case errors.Is(err, service.ErrAlreadyClockedOut):
		return "Use --force to overwrite the end time"
	}
	return ""
}

// printWarnings reports records skipped while loading the data file.
func printWarnings(deps *cli.Deps) {
	warnings, err := deps.Services.Storage.Warnings(deps.Context())
	if err != nil || len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: Found %d corrupted line(s) in storage file:\n", len(warnings))
	for _, warning := range warnings {
		_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(warning))
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'worktimer validate' for details or 'worktimer restore' to roll back")
	_, _ = fmt.Fprintln(deps.Stderr)
}

// confirm asks a yes/no question on deps.Stdin. Anything but y or yes is a no.
func confirm(deps *cli.Deps, question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes"
}

func formatDate(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	return t.Format(dayLayout)
}

func printDay(deps *cli.Deps, rec *service.DayRecord) {
	hourFormat := deps.Config.HourFormat
	label := cli.FormatDayType(rec.DayType())
	if rec.Overridden {
		label += cli.Muted(" (set manually)")
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s  %s\n", formatDate(rec.Date), label)
	_, _ = fmt.Fprintf(deps.Stdout, "  Time:      %s\n", cli.FormatEntryRange(rec.Entry.Start, rec.Entry.End, hourFormat))
	if rec.Entry.Crosses() {
		_, _ = fmt.Fprintln(deps.Stdout, "  "+cli.Muted("(ends after midnight)"))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Total:     %s\n", cli.FormatHours(rec.Calc.TotalHours))
	_, _ = fmt.Fprintf(deps.Stdout, "  Effective: %s\n", cli.FormatHours(rec.Calc.EffectiveHours))
}
