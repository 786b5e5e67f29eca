// Package daytype classifies calendar days as workdays, weekends, holidays
// or compensated rest-days.
package daytype

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayType is the classification of a single calendar day.
type DayType string

const (
	Workday     DayType = "workday"
	Weekend     DayType = "weekend"
	Holiday     DayType = "holiday"
	RestdayWork DayType = "restday-work"
)

// All lists every day type in display order.
var All = []DayType{Workday, Weekend, Holiday, RestdayWork}

// Valid reports whether t is one of the known day types.
func (t DayType) Valid() bool {
	switch t {
	case Workday, Weekend, Holiday, RestdayWork:
		return true
	}
	return false
}

// IsWorkLike reports whether the day follows the workday rules:
// workday breaks, no hour cap and the 8h target.
func (t DayType) IsWorkLike() bool {
	return t == Workday || t == RestdayWork
}

// Label returns a human-readable name for the day type.
func (t DayType) Label() string {
	switch t {
	case Workday:
		return "Workday"
	case Weekend:
		return "Weekend"
	case Holiday:
		return "Holiday"
	case RestdayWork:
		return "Compensated workday"
	}
	return string(t)
}

// Parse converts user input into a DayType.
// Accepts the canonical names and a few short aliases, case-insensitively.
func Parse(input string) (DayType, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "workday", "work", "w":
		return Workday, nil
	case "weekend", "rest", "we":
		return Weekend, nil
	case "holiday", "h":
		return Holiday, nil
	case "restday-work", "restday", "compensated", "makeup", "rw":
		return RestdayWork, nil
	}
	return "", fmt.Errorf("invalid day type '%s' (use workday, weekend, holiday or restday-work)", input)
}

// Default returns the classification a date has without any override:
// Saturday and Sunday are weekends, everything else is a workday.
// Dates that cannot be parsed are treated as workdays.
func Default(date string) DayType {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return Workday
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	}
	return Workday
}

// Classify returns the day type of date, preferring an explicit override.
func Classify(date string, overrides Overrides) DayType {
	if t, ok := overrides[date]; ok && t.Valid() {
		return t
	}
	return Default(date)
}

// Overrides maps "yyyy-MM-dd" dates to explicit day types.
// Only dates whose type differs from Default are ever stored.
type Overrides map[string]DayType

// Set records t for date. If t equals the computed default the override is
// removed instead, keeping the map minimal.
func (o Overrides) Set(date string, t DayType) {
	if t == Default(date) {
		delete(o, date)
		return
	}
	o[date] = t
}

// SetMany applies Set to every date.
func (o Overrides) SetMany(dates []string, t DayType) {
	for _, d := range dates {
		o.Set(d, t)
	}
}

// Delete removes any override for date.
func (o Overrides) Delete(date string) {
	delete(o, date)
}

// Normalize drops entries that are invalid or equal to their default.
// Returns the number of entries removed.
func (o Overrides) Normalize() int {
	removed := 0
	for date, t := range o {
		if !t.Valid() || t == Default(date) {
			delete(o, date)
			removed++
		}
	}
	return removed
}

// Clone returns an independent copy.
func (o Overrides) Clone() Overrides {
	c := make(Overrides, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Dates returns the overridden dates in ascending order.
func (o Overrides) Dates() []string {
	dates := make([]string, 0, len(o))
	for d := range o {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// InMonth returns the overrides whose date falls in the "yyyy-MM" month.
func (o Overrides) InMonth(monthKey string) Overrides {
	out := make(Overrides)
	for d, t := range o {
		if strings.HasPrefix(d, monthKey+"-") {
			out[d] = t
		}
	}
	return out
}
