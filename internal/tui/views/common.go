// Package views holds the tab views of the worktimer TUI.
package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/tui/ui"
)

// formatHours formats hours as "7.50 h".
func formatHours(hours float64) string {
	if hours == 0 || math.IsNaN(hours) {
		return "0 h"
	}
	return fmt.Sprintf("%.2f h", hours)
}

// formatClock formats a stored "HH:mm" value, or a placeholder when unset.
func formatClock(clock, hourFormat string) string {
	if clock == "" {
		return "--:--"
	}
	return timeutil.FormatClock(clock, hourFormat)
}

// formatInstant formats t as a wall-clock time in the given hour format.
func formatInstant(t time.Time, hourFormat string) string {
	if hourFormat == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// formatIntervals joins intervals as "12:00-13:30, 17:30-18:00".
func formatIntervals(intervals []string) string {
	if len(intervals) == 0 {
		return "none"
	}
	return strings.Join(intervals, ", ")
}

// nextDayType cycles through the day types in display order.
func nextDayType(t daytype.DayType) daytype.DayType {
	for i, dt := range daytype.All {
		if dt == t {
			return daytype.All[(i+1)%len(daytype.All)]
		}
	}
	return daytype.Workday
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
