package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/timeutil"
)

// DayTypeService manages day-type overrides.
type DayTypeService struct {
	state  *State
	now    func() time.Time
	logger *slog.Logger
}

// NewDayTypeService creates a new DayTypeService
func NewDayTypeService(state *State, now func() time.Time, logger *slog.Logger) *DayTypeService {
	return &DayTypeService{state: state, now: now, logger: logger}
}

// Set classifies every given date as typeInput. Setting a date to its
// default classification removes its override. Returns the resolved dates.
func (s *DayTypeService) Set(ctx context.Context, typeInput string, dateInputs []string) (daytype.DayType, []string, error) {
	t, err := daytype.Parse(typeInput)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDayType, err)
	}

	dates, err := s.resolveDates(dateInputs)
	if err != nil {
		return "", nil, err
	}

	err = s.state.update(ctx, changeOverrides, func(snap *snapshot.Snapshot) error {
		snap.DayTypeMap.SetMany(dates, t)
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Debug("day types updated", "type", t, "dates", dates)
	return t, dates, nil
}

// Reset removes the overrides of the given dates.
func (s *DayTypeService) Reset(ctx context.Context, dateInputs []string) ([]string, error) {
	dates, err := s.resolveDates(dateInputs)
	if err != nil {
		return nil, err
	}

	err = s.state.update(ctx, changeOverrides, func(snap *snapshot.Snapshot) error {
		for _, d := range dates {
			snap.DayTypeMap.Delete(d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// Get returns the classification of a date and whether it is overridden.
func (s *DayTypeService) Get(ctx context.Context, dateInput string) (daytype.DayType, bool, error) {
	date, err := resolveDate(dateInput, s.now())
	if err != nil {
		return "", false, err
	}

	var (
		t          daytype.DayType
		overridden bool
	)
	err = s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		t = daytype.Classify(date, snap.DayTypeMap)
		_, overridden = snap.DayTypeMap[date]
		return nil
	})
	return t, overridden, err
}

// List returns the overrides falling in month, ordered by date.
func (s *DayTypeService) List(ctx context.Context, month time.Time) ([]DayTypeRecord, error) {
	monthKey := timeutil.MonthKey(month)

	var records []DayTypeRecord
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		inMonth := snap.DayTypeMap.InMonth(monthKey)
		records = make([]DayTypeRecord, 0, len(inMonth))
		for _, d := range inMonth.Dates() {
			records = append(records, DayTypeRecord{
				Date:    d,
				Type:    inMonth[d],
				Default: daytype.Default(d),
			})
		}
		return nil
	})
	return records, err
}

func (s *DayTypeService) resolveDates(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		inputs = []string{"today"}
	}
	now := s.now()
	dates := make([]string, 0, len(inputs))
	for _, in := range inputs {
		d, err := resolveDate(in, now)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
