package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// twelveHourPattern matches "1:30p", "01:30pm" once spaces are removed
var twelveHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})([ap])m?$`)

// shortClockPattern matches 24h times with a single-digit hour, e.g. "9:05"
var shortClockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock normalizes a user-entered clock time to canonical "HH:mm".
// Accepts 24h input ("09:00", "9:00") and 12h input ("1:30 pm", "1:30p",
// "12:00 AM"). An empty input yields an empty result, meaning "not recorded".
func ParseClock(input string) (string, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(input), ""))
	if normalized == "" {
		return "", nil
	}

	if m := shortClockPattern.FindStringSubmatch(normalized); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return "", fmt.Errorf("time '%s' out of range (00:00-23:59)", input)
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	if m := twelveHourPattern.FindStringSubmatch(normalized); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour == 0 || hour > 12 || minute > 59 {
			return "", fmt.Errorf("time '%s' out of range (12:00 am-11:59 pm)", input)
		}
		switch {
		case m[3] == "p" && hour != 12:
			hour += 12
		case m[3] == "a" && hour == 12:
			hour = 0
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	return "", fmt.Errorf("invalid time '%s' (use HH:mm, e.g., 09:00, or 12h format, e.g., 1:30 pm)", input)
}

// ParseEntry normalizes both halves of an entry.
func ParseEntry(start, end string) (TimeEntry, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("end: %w", err)
	}
	return TimeEntry{Start: s, End: e}, nil
}
