// Package stats aggregates a month of daily work-hour calculations into
// dashboard figures: averages, overtime and the deficit against the 8h target.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/workhours"
)

// TargetDailyHours is the per-workday baseline used for overtime and deficit.
const TargetDailyHours = 8.0

// DailyCalculation is the derived result for a single date.
type DailyCalculation struct {
	DayType        daytype.DayType
	TotalHours     float64
	EffectiveHours float64
}

// DashboardStats summarizes one month. Copies share Dates and Daily; use
// Clone before modifying either.
type DashboardStats struct {
	MonthKey string

	// Dates lists every date of the month in order; Daily has an entry for each.
	Dates []string
	Daily map[string]DailyCalculation

	TotalWorkdayCount    int
	TotalWeekendDayCount int
	TotalWorkdayHours    float64
	TotalWeekendHours    float64

	AverageHours    float64
	WorkdayOvertime float64
	WeekendOvertime float64
	TotalOvertime   float64

	IsDeficit    bool
	DeficitHours float64
}

// Clone returns a copy that shares no memory with s.
func (s DashboardStats) Clone() DashboardStats {
	c := s
	if s.Dates != nil {
		c.Dates = append([]string(nil), s.Dates...)
	}
	if s.Daily != nil {
		c.Daily = make(map[string]DailyCalculation, len(s.Daily))
		for date, calc := range s.Daily {
			c.Daily[date] = calc
		}
	}
	return c
}

// Day returns the calculation for date, or a zero value for dates outside
// the month.
func (s DashboardStats) Day(date string) (DailyCalculation, bool) {
	d, ok := s.Daily[date]
	return d, ok
}

// TotalHours returns workday plus weekend/holiday hours.
func (s DashboardStats) TotalHours() float64 {
	return s.TotalWorkdayHours + s.TotalWeekendHours
}

// AggregateMonth computes the dashboard for the month containing month.
// Every date is classified and calculated, including days without entries.
func AggregateMonth(month time.Time, entries map[string]entry.TimeEntry, overrides daytype.Overrides, settings workhours.Settings) DashboardStats {
	dates := timeutil.DaysInMonth(month)
	result := DashboardStats{
		MonthKey: timeutil.MonthKey(month),
		Dates:    dates,
		Daily:    make(map[string]DailyCalculation, len(dates)),
	}

	for _, date := range dates {
		dt := daytype.Classify(date, overrides)
		hours := workhours.Compute(entries[date], dt, settings)

		result.Daily[date] = DailyCalculation{
			DayType:        dt,
			TotalHours:     hours.TotalHours,
			EffectiveHours: hours.EffectiveHours,
		}

		if hours.EffectiveHours <= 0 {
			continue
		}
		if dt.IsWorkLike() {
			result.TotalWorkdayHours += hours.EffectiveHours
			result.TotalWorkdayCount++
		} else {
			result.TotalWeekendHours += hours.EffectiveHours
			result.TotalWeekendDayCount++
		}
	}

	if result.TotalWorkdayCount > 0 {
		result.AverageHours = result.TotalWorkdayHours / float64(result.TotalWorkdayCount)
	}

	target := float64(result.TotalWorkdayCount) * TargetDailyHours
	result.WorkdayOvertime = result.TotalWorkdayHours - target
	result.WeekendOvertime = result.TotalWeekendHours
	result.TotalOvertime = result.WorkdayOvertime + result.WeekendOvertime

	if result.AverageHours > 0 && result.AverageHours < TargetDailyHours {
		result.DeficitHours = target - result.TotalWorkdayHours
	}
	result.IsDeficit = result.DeficitHours > 0

	return result
}

// CompareMonths returns the difference in total effective hours between
// two months (current minus previous).
func CompareMonths(current, previous DashboardStats) float64 {
	return current.TotalHours() - previous.TotalHours()
}

// FormatComparison renders a month-over-month difference in hours,
// e.g. "up 2h 30m from last month".
func FormatComparison(diffHours float64, periodName string) string {
	minutes := int(math.Round(diffHours * 60))
	switch {
	case minutes > 0:
		return fmt.Sprintf("up %s from last %s", formatMinutes(minutes), periodName)
	case minutes < 0:
		return fmt.Sprintf("down %s from last %s", formatMinutes(-minutes), periodName)
	default:
		return fmt.Sprintf("same as last %s", periodName)
	}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
