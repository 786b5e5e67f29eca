package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/timer"
	"github.com/xolan/worktimer/internal/timeutil"
)

// CountdownService projects today's end of work and counts down to it.
type CountdownService struct {
	state     *State
	dashboard *DashboardService
	now       func() time.Time
	logger    *slog.Logger
}

// NewCountdownService creates a new CountdownService
func NewCountdownService(state *State, dashboard *DashboardService, now func() time.Time, logger *slog.Logger) *CountdownService {
	return &CountdownService{state: state, dashboard: dashboard, now: now, logger: logger}
}

// Status evaluates today's record, the projected end time and the countdown
// at the current instant. The deficit comes from the month containing now.
func (s *CountdownService) Status(ctx context.Context) (*TodayStatus, error) {
	now := s.now()
	today := timeutil.DateKey(now)

	var status TodayStatus
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, v Versions) error {
		status.Day = buildDayRecord(snap, today)
		status.Month = s.dashboard.aggregate(snap, v, now)
		status.Settings = snap.Settings.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	status.Projection, status.HasProjection = timer.Project(timer.ProjectionInput{
		StandardEnd:  status.Settings.StandardWorkTime.End,
		Today:        status.Day.Calc,
		IsDeficit:    status.Month.IsDeficit,
		DeficitHours: status.Month.DeficitHours,
		Now:          now,
	})
	status.Countdown, _ = timer.CountdownFor(status.Projection, status.HasProjection, now)
	return &status, nil
}
