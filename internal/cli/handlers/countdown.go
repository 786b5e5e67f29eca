package handlers

import (
	"fmt"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/service"
)

// ShowCountdown prints today's projected end of work and the time left.
func ShowCountdown(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	status, err := deps.Services.Countdown.Status(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}

	if !status.HasProjection {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Standard end time '%s' is not a valid time\n", status.Settings.StandardWorkTime.End)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Fix it with 'worktimer settings set --standard 09:00-17:30'")
		deps.Exit(1)
		return
	}

	printProjection(deps, status)
}

func printProjection(deps *cli.Deps, status *service.TodayStatus) {
	if !status.HasProjection {
		return
	}

	p := status.Projection
	layout := "15:04"
	if deps.Config.HourFormat == "12h" {
		layout = "3:04 PM"
	}

	_, _ = fmt.Fprintf(deps.Stdout, "  Ends at:   %s\n", p.Projected.Format(layout))
	if p.Adjusted() {
		_, _ = fmt.Fprintf(deps.Stdout, "             %s\n",
			cli.Muted(fmt.Sprintf("standard %s, +%dm to cover this month's deficit", p.Standard.Format(layout), p.ExtraMinutes())))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  Remaining: %s\n", cli.FormatCountdown(status.Countdown))
}
