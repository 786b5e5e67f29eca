package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/service"
)

// SetEntry records start and end times for a date.
func SetEntry(deps *cli.Deps, dateInput, start, end string) {
	if !deps.Ready() {
		return
	}

	rec, err := deps.Services.Entry.Set(deps.Context(), dateInput, start, end)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Recorded %s: %s (%s effective)\n",
		formatDate(rec.Date),
		cli.FormatEntryRange(rec.Entry.Start, rec.Entry.End, deps.Config.HourFormat),
		cli.FormatHours(rec.Calc.EffectiveHours))
}

// ClearEntry removes the entry for a date.
func ClearEntry(deps *cli.Deps, dateInput string) {
	if !deps.Ready() {
		return
	}

	rec, err := deps.Services.Entry.Clear(deps.Context(), dateInput)
	if err != nil {
		if errors.Is(err, service.ErrNoEntry) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: See recorded days with 'worktimer month --history'")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cleared entry for %s\n", formatDate(rec.Date))
}

// ShowDay prints the entry and hours for a date.
func ShowDay(deps *cli.Deps, dateInput string) {
	if !deps.Ready() {
		return
	}

	rec, err := deps.Services.Entry.Get(deps.Context(), dateInput)
	if err != nil {
		fail(deps, err)
		return
	}

	printWarnings(deps)
	printDay(deps, rec)
}

// ClockIn records the current time as today's start.
func ClockIn(deps *cli.Deps, force bool) {
	if !deps.Ready() {
		return
	}

	rec, err := deps.Services.Entry.ClockIn(deps.Context(), force)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyClockedIn) && rec != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Warning: You already clocked in today")
			_, _ = fmt.Fprintf(deps.Stderr, "Started: %s\n", cli.FormatClock(rec.Entry.Start, deps.Config.HourFormat))
			_, _ = fmt.Fprintln(deps.Stderr)
			_, _ = fmt.Fprintln(deps.Stderr, "Options:")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Clock out with 'worktimer out'")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Start over with 'worktimer in --force'")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clocked in at %s\n", cli.FormatClock(rec.Entry.Start, deps.Config.HourFormat))
	if force {
		_, _ = fmt.Fprintln(deps.Stdout, "(Previous entry for today was overwritten)")
	}
}

// ClockOut records the current time as the end of the open entry.
func ClockOut(deps *cli.Deps, force bool) {
	if !deps.Ready() {
		return
	}

	rec, err := deps.Services.Entry.ClockOut(deps.Context(), force)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clocked out at %s\n", cli.FormatClock(rec.Entry.End, deps.Config.HourFormat))
	printDay(deps, rec)
}
