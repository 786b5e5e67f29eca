package timeutil

import "time"

// DateLayout is the calendar-date key format used throughout the application.
const DateLayout = "2006-01-02"

// MonthLayout is the month key format.
const MonthLayout = "2006-01"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month at 00:00:00 in the same timezone
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of the last day of the month
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// PreviousMonth returns the first day of the month before t.
func PreviousMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after t.
func NextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// DateKey formats t as a "yyyy-MM-dd" key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats t as a "yyyy-MM" key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DaysInMonth returns the date keys of every calendar day in the month
// containing t, in ascending order.
func DaysInMonth(t time.Time) []string {
	start := StartOfMonth(t)
	end := start.AddDate(0, 1, 0)

	var days []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DateKey(d))
	}
	return days
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
