package workhours

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/worktimer/internal/timeutil"
)

// Interval is a clock range such as a break or the standard work time.
type Interval struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// String formats the interval as "HH:mm-HH:mm".
func (i Interval) String() string {
	return i.Start + "-" + i.End
}

// Settings configures how recorded time turns into effective hours.
type Settings struct {
	StandardWorkTime Interval   `json:"standardWorkTime" yaml:"standard_work_time"`
	WorkdayRestTimes []Interval `json:"workdayRestTimes" yaml:"workday_rest_times"`
	WeekendRestTimes []Interval `json:"weekendRestTimes" yaml:"weekend_rest_times"`
	MaxWeekendHours  float64    `json:"maxWeekendHours" yaml:"max_weekend_hours"`
}

// DefaultSettings returns the settings used until the user changes them.
func DefaultSettings() Settings {
	return Settings{
		StandardWorkTime: Interval{Start: "09:00", End: "17:30"},
		WorkdayRestTimes: []Interval{
			{Start: "12:00", End: "13:30"},
			{Start: "17:30", End: "18:00"},
		},
		WeekendRestTimes: []Interval{
			{Start: "12:00", End: "13:30"},
		},
		MaxWeekendHours: 8,
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := s
	c.WorkdayRestTimes = append([]Interval(nil), s.WorkdayRestTimes...)
	c.WeekendRestTimes = append([]Interval(nil), s.WeekendRestTimes...)
	return c
}

// Validate checks settings entered by the user. Compute never calls it:
// the calculator tolerates whatever it is given.
func (s Settings) Validate() error {
	var errs []error

	if _, ok := timeutil.ParseTimeOfDay(s.StandardWorkTime.Start); !ok {
		errs = append(errs, fmt.Errorf("standard work start '%s' is not a valid HH:mm time", s.StandardWorkTime.Start))
	}
	if _, ok := timeutil.ParseTimeOfDay(s.StandardWorkTime.End); !ok {
		errs = append(errs, fmt.Errorf("standard work end '%s' is not a valid HH:mm time", s.StandardWorkTime.End))
	}

	errs = append(errs, validateBreaks("workday break", s.WorkdayRestTimes)...)
	errs = append(errs, validateBreaks("weekend break", s.WeekendRestTimes)...)

	if s.MaxWeekendHours < 0 {
		errs = append(errs, fmt.Errorf("max weekend hours must not be negative, got %g", s.MaxWeekendHours))
	}

	return errors.Join(errs...)
}

func validateBreaks(kind string, breaks []Interval) []error {
	var errs []error
	for i, b := range breaks {
		start, okStart := timeutil.ParseTimeOfDay(b.Start)
		end, okEnd := timeutil.ParseTimeOfDay(b.End)
		switch {
		case !okStart || !okEnd:
			errs = append(errs, fmt.Errorf("%s %d (%s) must use HH:mm times", kind, i+1, b))
		case !start.Before(end):
			errs = append(errs, fmt.Errorf("%s %d (%s) must start before it ends", kind, i+1, b))
		}
	}
	return errs
}

// ParseInterval parses "HH:mm-HH:mm".
func ParseInterval(s string) (Interval, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		iv := Interval{Start: s[:i], End: s[i+1:]}
		_, okStart := timeutil.ParseTimeOfDay(iv.Start)
		_, okEnd := timeutil.ParseTimeOfDay(iv.End)
		if okStart && okEnd {
			return iv, nil
		}
		break
	}
	return Interval{}, fmt.Errorf("invalid interval '%s' (use HH:mm-HH:mm, e.g., 12:00-13:30)", s)
}

// ParseIntervalList parses a comma-separated list of intervals. Empty items
// are skipped, so "" yields an empty list.
func ParseIntervalList(s string) ([]Interval, error) {
	intervals := []Interval{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		iv, err := ParseInterval(part)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// IntervalStrings formats each interval as "HH:mm-HH:mm".
func IntervalStrings(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.String()
	}
	return out
}
