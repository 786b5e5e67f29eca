// Package workhours turns one day's clock-in/clock-out pair into total and
// effective working hours.
package workhours

import (
	"math"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/timeutil"
)

// Result is the outcome of Compute.
type Result struct {
	// TotalHours is the raw span between start and end.
	TotalHours float64
	// EffectiveHours is the span minus breaks, never negative, capped on
	// weekends and holidays.
	EffectiveHours float64
}

// BreaksFor returns the break set that applies to a day type.
func (s Settings) BreaksFor(t daytype.DayType) []Interval {
	if t.IsWorkLike() {
		return s.WorkdayRestTimes
	}
	return s.WeekendRestTimes
}

// Compute calculates the hours worked for one entry.
// Missing or unparseable times yield a zero Result.
func Compute(e entry.TimeEntry, t daytype.DayType, s Settings) Result {
	start, okStart := timeutil.ParseTimeOfDay(e.Start)
	end, okEnd := timeutil.ParseTimeOfDay(e.End)
	if !okStart || !okEnd {
		return Result{}
	}

	totalMinutes := timeutil.MinutesBetween(start, end)

	breakMinutes := 0
	for _, b := range s.BreaksFor(t) {
		bStart, ok1 := timeutil.ParseTimeOfDay(b.Start)
		bEnd, ok2 := timeutil.ParseTimeOfDay(b.End)
		if !ok1 || !ok2 {
			continue
		}

		overlapStart := timeutil.Later(start, bStart)
		overlapEnd := timeutil.Earlier(end, bEnd)
		if overlapStart.After(overlapEnd) {
			continue
		}
		breakMinutes += timeutil.MinutesBetween(overlapStart, overlapEnd)
	}

	effective := math.Max(0, float64(totalMinutes-breakMinutes)/60)
	if !t.IsWorkLike() {
		effective = math.Min(effective, s.MaxWeekendHours)
	}

	return Result{
		TotalHours:     float64(totalMinutes) / 60,
		EffectiveHours: effective,
	}
}
