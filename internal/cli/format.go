// Package cli provides the CLI presentation layer for the worktimer
// application. It handles command-line output formatting and user
// interaction.
package cli

import (
	"fmt"
	"math"

	"github.com/fatih/color"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/storage"
	"github.com/xolan/worktimer/internal/timer"
	"github.com/xolan/worktimer/internal/timeutil"
)

var (
	deficitColor  = color.New(color.FgRed)
	overtimeColor = color.New(color.FgGreen)
	mutedColor    = color.New(color.FgHiBlack)

	dayTypeColors = map[daytype.DayType]*color.Color{
		daytype.Workday:     color.New(color.FgBlue),
		daytype.Weekend:     color.New(color.FgHiBlack),
		daytype.Holiday:     color.New(color.FgYellow),
		daytype.RestdayWork: color.New(color.FgMagenta),
	}
)

// FormatHours formats hours as "X.XX h"; zero is "0 h".
func FormatHours(hours float64) string {
	if hours == 0 || math.IsNaN(hours) {
		return "0 h"
	}
	return fmt.Sprintf("%.2f h", hours)
}

// FormatSignedHours formats an hour difference with an explicit sign,
// colored green when positive and red when negative.
func FormatSignedHours(hours float64) string {
	switch {
	case hours > 0.005:
		return overtimeColor.Sprintf("+%.2f h", hours)
	case hours < -0.005:
		return deficitColor.Sprintf("%.2f h", hours)
	}
	return "0 h"
}

// FormatDeficit formats a deficit in red, or "none" when there is none.
func FormatDeficit(isDeficit bool, hours float64) string {
	if !isDeficit {
		return overtimeColor.Sprint("none")
	}
	return deficitColor.Sprint(FormatHours(hours))
}

// FormatDayType returns the colored label for a day type.
func FormatDayType(t daytype.DayType) string {
	if c, ok := dayTypeColors[t]; ok {
		return c.Sprint(t.Label())
	}
	return t.Label()
}

// FormatClock renders a stored "HH:mm" value in the configured hour format.
// An empty value is shown as "--:--".
func FormatClock(s, hourFormat string) string {
	if s == "" {
		return "--:--"
	}
	return timeutil.FormatClock(s, hourFormat)
}

// FormatEntryRange formats a start/end pair, e.g. "09:00 - 17:30".
func FormatEntryRange(start, end, hourFormat string) string {
	return FormatClock(start, hourFormat) + " - " + FormatClock(end, hourFormat)
}

// FormatCountdown formats a countdown, or a finished message once it is over.
func FormatCountdown(c timer.Countdown) string {
	if c.IsOver {
		return overtimeColor.Sprint("done for today")
	}
	return c.String()
}

// Muted renders s in a dim color.
func Muted(s string) string {
	return mutedColor.Sprint(s)
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
