package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

// clockPattern matches the canonical two-digit "HH:mm" clock notation.
var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// TimeOfDay is a wall-clock time with minute precision. Seconds are always zero.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a canonical "HH:mm" string.
// The second return value is false for anything that does not match the
// pattern or falls outside 00:00-23:59; it never panics.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on invalid input.
// Intended for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, ok := ParseTimeOfDay(s)
	if !ok {
		panic(fmt.Sprintf("timeutil: invalid time of day %q", s))
	}
	return t
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Minutes() < u.Minutes()
}

// After reports whether t is strictly later in the day than u.
func (t TimeOfDay) After(u TimeOfDay) bool {
	return t.Minutes() > u.Minutes()
}

// String formats t as "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors t to the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// Later returns whichever of a and b is later in the day.
func Later(a, b TimeOfDay) TimeOfDay {
	if a.After(b) {
		return a
	}
	return b
}

// Earlier returns whichever of a and b is earlier in the day.
func Earlier(a, b TimeOfDay) TimeOfDay {
	if a.Before(b) {
		return a
	}
	return b
}

// MinutesBetween returns the minutes elapsed from a to b.
// When b is earlier than a the interval is treated as crossing midnight.
// Equal times yield zero.
func MinutesBetween(a, b TimeOfDay) int {
	if b.Before(a) {
		return (MinutesPerDay - a.Minutes()) + b.Minutes()
	}
	return b.Minutes() - a.Minutes()
}

// FormatClock renders a canonical "HH:mm" value in the requested hour format.
// "12h" yields e.g. "1:30 PM"; anything else returns the value unchanged.
// Values that do not parse are returned as-is.
func FormatClock(s, hourFormat string) string {
	t, ok := ParseTimeOfDay(s)
	if !ok || hourFormat != "12h" {
		return s
	}
	return t.On(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)).Format("3:04 PM")
}
