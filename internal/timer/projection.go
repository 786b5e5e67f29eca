// Package timer projects today's end-of-work time from the month's deficit
// and counts down to it.
package timer

import (
	"math"
	"time"

	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
)

// ProjectionInput carries everything Project needs. Now is injected so the
// projection can be evaluated against a fixed clock.
type ProjectionInput struct {
	StandardEnd  string
	Today        stats.DailyCalculation
	IsDeficit    bool
	DeficitHours float64
	Now          time.Time
}

// Projection is the adjusted and unadjusted end of today's work.
type Projection struct {
	Projected time.Time
	Standard  time.Time
}

// Adjusted reports whether the projection differs from the standard end.
func (p Projection) Adjusted() bool {
	return !p.Projected.Equal(p.Standard)
}

// ExtraMinutes returns how many minutes were added to the standard end.
func (p Projection) ExtraMinutes() int {
	return int(p.Projected.Sub(p.Standard) / time.Minute)
}

// Project computes today's projected end time. The standard end is anchored
// to the calendar day of in.Now. The second return value is false only when
// the standard end does not parse.
//
// The standard end is extended by the month's outstanding deficit when today
// is a work-like day that already has effective hours and the standard end
// is still in the future.
func Project(in ProjectionInput) (Projection, bool) {
	end, ok := timeutil.ParseTimeOfDay(in.StandardEnd)
	if !ok {
		return Projection{}, false
	}

	standard := end.On(in.Now)
	p := Projection{Projected: standard, Standard: standard}

	if !in.Today.DayType.IsWorkLike() || in.Today.EffectiveHours <= 0 {
		return p, true
	}

	if in.IsDeficit && in.Now.Before(standard) {
		extra := int(math.Ceil(in.DeficitHours * 60))
		p.Projected = standard.Add(time.Duration(extra) * time.Minute)
	}

	return p, true
}
