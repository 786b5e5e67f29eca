package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timeutil"
	"github.com/xolan/worktimer/internal/workhours"
)

// EntryService records clock-in and clock-out times.
type EntryService struct {
	state  *State
	now    func() time.Time
	logger *slog.Logger
}

// NewEntryService creates a new EntryService
func NewEntryService(state *State, now func() time.Time, logger *slog.Logger) *EntryService {
	return &EntryService{state: state, now: now, logger: logger}
}

func buildDayRecord(snap snapshot.Snapshot, date string) DayRecord {
	e := snap.TimeEntries[date]
	dt := daytype.Classify(date, snap.DayTypeMap)
	_, overridden := snap.DayTypeMap[date]
	res := workhours.Compute(e, dt, snap.Settings)

	return DayRecord{
		Date:       date,
		Entry:      e,
		Overridden: overridden,
		Calc: stats.DailyCalculation{
			DayType:        dt,
			TotalHours:     res.TotalHours,
			EffectiveHours: res.EffectiveHours,
		},
	}
}

func resolveDate(input string, now time.Time) (string, error) {
	d, err := timeutil.ResolveDate(input, now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return timeutil.DateKey(d), nil
}

// Get returns the record for a date ("" means today).
func (s *EntryService) Get(ctx context.Context, dateInput string) (*DayRecord, error) {
	date, err := resolveDate(dateInput, s.now())
	if err != nil {
		return nil, err
	}

	var rec DayRecord
	err = s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		rec = buildDayRecord(snap, date)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set records start and end for a date, replacing any previous entry.
// Times accept 24h and 12h input; an empty time means "not recorded".
func (s *EntryService) Set(ctx context.Context, dateInput, start, end string) (*DayRecord, error) {
	date, err := resolveDate(dateInput, s.now())
	if err != nil {
		return nil, err
	}

	e, err := entry.ParseEntry(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return s.write(ctx, date, func(snap *snapshot.Snapshot) error {
		snap.TimeEntries[date] = e
		return nil
	})
}

// Clear removes the entry for a date. Returns ErrNoEntry if there is none.
func (s *EntryService) Clear(ctx context.Context, dateInput string) (*DayRecord, error) {
	date, err := resolveDate(dateInput, s.now())
	if err != nil {
		return nil, err
	}

	return s.write(ctx, date, func(snap *snapshot.Snapshot) error {
		if _, ok := snap.TimeEntries[date]; !ok {
			return fmt.Errorf("%w for %s", ErrNoEntry, date)
		}
		delete(snap.TimeEntries, date)
		return nil
	})
}

// ClockIn records the current time as today's start. If a start is already
// recorded it is only replaced when force is set; the existing record is
// returned alongside ErrAlreadyClockedIn otherwise.
func (s *EntryService) ClockIn(ctx context.Context, force bool) (*DayRecord, error) {
	now := s.now()
	date := timeutil.DateKey(now)
	clock := now.Format("15:04")

	var existing *DayRecord
	rec, err := s.write(ctx, date, func(snap *snapshot.Snapshot) error {
		e := snap.TimeEntries[date]
		if e.Start != "" && !force {
			r := buildDayRecord(*snap, date)
			existing = &r
			return ErrAlreadyClockedIn
		}
		snap.TimeEntries[date] = entry.TimeEntry{Start: clock}
		return nil
	})
	if existing != nil {
		return existing, err
	}
	return rec, err
}

// ClockOut records the current time as the end of the open entry. The open
// entry is today's, or yesterday's when a shift runs past midnight.
func (s *EntryService) ClockOut(ctx context.Context, force bool) (*DayRecord, error) {
	now := s.now()
	today := timeutil.DateKey(now)
	yesterday := timeutil.DateKey(now.AddDate(0, 0, -1))
	clock := now.Format("15:04")

	var date string
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		t := snap.TimeEntries[today]
		y := snap.TimeEntries[yesterday]
		switch {
		case t.Start != "":
			date = today
			if t.End != "" && !force {
				return fmt.Errorf("%w at %s", ErrAlreadyClockedOut, t.End)
			}
		case y.Start != "" && y.End == "":
			date = yesterday
		default:
			return ErrIncompleteEntry
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.write(ctx, date, func(snap *snapshot.Snapshot) error {
		e := snap.TimeEntries[date]
		e.End = clock
		snap.TimeEntries[date] = e
		return nil
	})
}

func (s *EntryService) write(ctx context.Context, date string, fn func(snap *snapshot.Snapshot) error) (*DayRecord, error) {
	var rec DayRecord
	err := s.state.update(ctx, changeEntries, func(snap *snapshot.Snapshot) error {
		if err := fn(snap); err != nil {
			return err
		}
		rec = buildDayRecord(*snap, date)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("entry updated", "date", date, "start", rec.Entry.Start, "end", rec.Entry.End)
	return &rec, nil
}
