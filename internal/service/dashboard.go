package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
)

// DashboardService provides the monthly statistics.
type DashboardService struct {
	state  *State
	memo   *aggregateMemo
	now    func() time.Time
	logger *slog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(state *State, now func() time.Time, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		state:  state,
		memo:   newAggregateMemo(logger),
		now:    now,
		logger: logger,
	}
}

// Stats returns the aggregation for the month containing month. Results are
// memoized until entries, overrides or settings change.
func (s *DashboardService) Stats(ctx context.Context, month time.Time) (stats.DashboardStats, error) {
	var result stats.DashboardStats
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, v Versions) error {
		result = s.aggregate(snap, v, month)
		return nil
	})
	return result, err
}

func (s *DashboardService) aggregate(snap snapshot.Snapshot, v Versions, month time.Time) stats.DashboardStats {
	return s.memo.get(month, v, func() stats.DashboardStats {
		return stats.AggregateMonth(month, snap.TimeEntries, snap.DayTypeMap, snap.Settings)
	})
}

// Month returns the dashboard for month together with a comparison against
// the previous month.
func (s *DashboardService) Month(ctx context.Context, month time.Time) (*MonthResult, error) {
	month = timeutil.StartOfMonth(month)

	var result MonthResult
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, v Versions) error {
		result.Stats = s.aggregate(snap, v, month)
		result.Previous = s.aggregate(snap, v, timeutil.PreviousMonth(month))
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Comparison = stats.FormatComparison(stats.CompareMonths(result.Stats, result.Previous), "month")
	result.Period = month.Format("January 2006")
	return &result, nil
}

// Current returns the dashboard for the month containing now.
func (s *DashboardService) Current(ctx context.Context) (*MonthResult, error) {
	return s.Month(ctx, s.now())
}

// History returns the days of month that have an entry or an override,
// most recent first.
func (s *DashboardService) History(ctx context.Context, month time.Time) ([]DayRecord, error) {
	monthKey := timeutil.MonthKey(month)

	var records []DayRecord
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		seen := make(map[string]bool)
		for d := range snap.TimeEntries {
			seen[d] = true
		}
		for d := range snap.DayTypeMap {
			seen[d] = true
		}
		for d := range seen {
			if len(d) >= 7 && d[:7] == monthKey {
				records = append(records, buildDayRecord(snap, d))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return records, nil
}

// Months returns every month with data, most recent first.
func (s *DashboardService) Months(ctx context.Context) ([]string, error) {
	var months []string
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		months = snap.Months()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}
