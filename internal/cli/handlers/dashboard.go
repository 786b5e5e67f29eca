package handlers

import (
	"fmt"
	"time"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
)

// ShowSummary prints today's status followed by the current month.
func ShowSummary(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	status, err := deps.Services.Countdown.Status(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	result, err := deps.Services.Dashboard.Current(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}

	printWarnings(deps)
	_, _ = fmt.Fprintln(deps.Stdout, "Today")
	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	printDay(deps, &status.Day)
	printProjection(deps, status)
	_, _ = fmt.Fprintln(deps.Stdout)
	printMonth(deps, result)
}

// ShowMonth prints the dashboard of a month and, optionally, the per-day
// history.
func ShowMonth(deps *cli.Deps, monthInput string, history bool) {
	if !deps.Ready() {
		return
	}

	month, ok := resolveMonth(deps, monthInput)
	if !ok {
		return
	}

	result, err := deps.Services.Dashboard.Month(deps.Context(), month)
	if err != nil {
		fail(deps, err)
		return
	}

	printWarnings(deps)
	printMonth(deps, result)

	if history {
		records, err := deps.Services.Dashboard.History(deps.Context(), month)
		if err != nil {
			fail(deps, err)
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout)
		printHistory(deps, records)
	}
}

// ListMonths prints every month that has recorded data.
func ListMonths(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	months, err := deps.Services.Dashboard.Months(deps.Context())
	if err != nil {
		fail(deps, err)
		return
	}
	if len(months) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No recorded months")
		_, _ = fmt.Fprintln(deps.Stdout, "Record a day with: worktimer set <start> <end>")
		return
	}
	for _, m := range months {
		_, _ = fmt.Fprintln(deps.Stdout, m)
	}
}

func resolveMonth(deps *cli.Deps, input string) (time.Time, bool) {
	month, err := timeutil.ResolveMonth(input, deps.Services.Now())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM, 'this' or 'last'")
		deps.Exit(1)
		return time.Time{}, false
	}
	return month, true
}

func printMonth(deps *cli.Deps, result *service.MonthResult) {
	s := result.Stats
	_, _ = fmt.Fprintf(deps.Stdout, "Dashboard for %s:\n", result.Period)
	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	_, _ = fmt.Fprintf(deps.Stdout, "Workdays:         %d %s, %s\n",
		s.TotalWorkdayCount, cli.Pluralize("day", s.TotalWorkdayCount), cli.FormatHours(s.TotalWorkdayHours))
	_, _ = fmt.Fprintf(deps.Stdout, "Weekend work:     %d %s, %s\n",
		s.TotalWeekendDayCount, cli.Pluralize("day", s.TotalWeekendDayCount), cli.FormatHours(s.TotalWeekendHours))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day:  %s (target %s)\n",
		cli.FormatHours(s.AverageHours), cli.FormatHours(stats.TargetDailyHours))
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	_, _ = fmt.Fprintf(deps.Stdout, "Workday overtime: %s\n", cli.FormatSignedHours(s.WorkdayOvertime))
	_, _ = fmt.Fprintf(deps.Stdout, "Weekend overtime: %s\n", cli.FormatSignedHours(s.WeekendOvertime))
	_, _ = fmt.Fprintf(deps.Stdout, "Total overtime:   %s\n", cli.FormatSignedHours(s.TotalOvertime))
	_, _ = fmt.Fprintf(deps.Stdout, "Deficit:          %s\n", cli.FormatDeficit(s.IsDeficit, s.DeficitHours))
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	_, _ = fmt.Fprintf(deps.Stdout, "Comparison: %s\n", result.Comparison)
}

func printHistory(deps *cli.Deps, records []service.DayRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No recorded days")
		return
	}

	hourFormat := deps.Config.HourFormat
	_, _ = fmt.Fprintln(deps.Stdout, "History:")
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	for _, r := range records {
		_, _ = fmt.Fprintf(deps.Stdout, "%-18s %-22s %10s  %s\n",
			formatDate(r.Date),
			cli.FormatEntryRange(r.Entry.Start, r.Entry.End, hourFormat),
			cli.FormatHours(r.Calc.EffectiveHours),
			cli.FormatDayType(r.DayType()))
	}
}
