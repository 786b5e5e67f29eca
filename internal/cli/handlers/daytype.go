package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/worktimer/internal/cli"
)

// SetDayType overrides the classification of one or more dates.
func SetDayType(deps *cli.Deps, typeInput string, dateInputs []string) {
	if !deps.Ready() {
		return
	}

	t, dates, err := deps.Services.DayType.Set(deps.Context(), typeInput, dateInputs)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Marked %d %s as %s: %s\n",
		len(dates), cli.Pluralize("day", len(dates)), cli.FormatDayType(t), strings.Join(dates, ", "))
}

// ResetDayTypes removes overrides so the dates fall back to their calendar
// classification.
func ResetDayTypes(deps *cli.Deps, dateInputs []string) {
	if !deps.Ready() {
		return
	}

	dates, err := deps.Services.DayType.Reset(deps.Context(), dateInputs)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Reset %d %s: %s\n", len(dates), cli.Pluralize("day", len(dates)), strings.Join(dates, ", "))
}

// ListDayTypes lists the overrides of a month.
func ListDayTypes(deps *cli.Deps, monthInput string) {
	if !deps.Ready() {
		return
	}

	month, ok := resolveMonth(deps, monthInput)
	if !ok {
		return
	}

	records, err := deps.Services.DayType.List(deps.Context(), month)
	if err != nil {
		fail(deps, err)
		return
	}

	period := month.Format("January 2006")
	if len(records) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No day type overrides for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Day types for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	for _, r := range records {
		_, _ = fmt.Fprintf(deps.Stdout, "%-18s %s %s\n",
			formatDate(r.Date), cli.FormatDayType(r.Type), cli.Muted("(normally "+strings.ToLower(r.Default.Label())+")"))
	}
}
