package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDate parses a date string in YYYY-MM-DD or DD/MM/YYYY format.
// Returns the parsed date at midnight in the local timezone.
// For ambiguous dates (like 05/06/2024), ISO format is preferred.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	t, err := time.ParseInLocation(DateLayout, input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	t, err = time.ParseInLocation("02/01/2006", input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// ResolveDate parses a date argument relative to now.
// Accepts "today", "yesterday", "tomorrow" and anything ParseDate accepts.
func ResolveDate(input string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today", "t":
		return StartOfDay(now), nil
	case "yesterday", "y":
		return StartOfDay(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return StartOfDay(now.AddDate(0, 0, 1)), nil
	}
	return ParseDate(input)
}

// ParseMonth parses a "YYYY-MM" month key and returns the first day of that
// month. "MM/YYYY" is accepted as well.
func ParseMonth(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("month cannot be empty (use format YYYY-MM, e.g., 2024-01)")
	}

	t, err := time.ParseInLocation(MonthLayout, input, time.Local)
	if err == nil {
		return StartOfMonth(t), nil
	}

	t, err = time.ParseInLocation("01/2006", input, time.Local)
	if err == nil {
		return StartOfMonth(t), nil
	}

	return time.Time{}, fmt.Errorf("invalid month '%s' (use YYYY-MM, e.g., 2024-01)", input)
}

// ResolveMonth parses a month argument relative to now.
// Accepts "", "this", "current", "last", "prev" and anything ParseMonth accepts.
func ResolveMonth(input string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "this", "current":
		return StartOfMonth(now), nil
	case "last", "prev", "previous":
		return PreviousMonth(now), nil
	}
	return ParseMonth(input)
}

func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}
