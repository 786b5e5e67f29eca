// Package service provides the business logic layer for worktimer.
// It owns the application state and wraps the calculation packages,
// providing one API for both the CLI and the TUI.
package service

import (
	"errors"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/stats"
	"github.com/xolan/worktimer/internal/timer"
	"github.com/xolan/worktimer/internal/workhours"
)

// Common errors returned by the services
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTime       = errors.New("invalid time")
	ErrIncompleteEntry   = errors.New("entry has no start time")
	ErrInvalidDayType    = errors.New("invalid day type")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrUnknownFormat     = snapshot.ErrUnknownFormat
	ErrNoEntry           = errors.New("no entry recorded")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out")
)

// DayRecord is everything known about one date: the raw entry, its
// classification and the derived hours.
type DayRecord struct {
	Date       string
	Entry      entry.TimeEntry
	Overridden bool // day type comes from an explicit override
	Calc       stats.DailyCalculation
}

// DayType returns the classification of the day.
func (r DayRecord) DayType() daytype.DayType {
	return r.Calc.DayType
}

// MonthResult is the dashboard for one month with a comparison against
// the month before.
type MonthResult struct {
	Stats      stats.DashboardStats
	Previous   stats.DashboardStats
	Comparison string // e.g. "up 2h 30m from last month"
	Period     string // e.g. "January 2024"
}

// TodayStatus combines today's record with the end-of-day projection.
type TodayStatus struct {
	Day        DayRecord
	Month      stats.DashboardStats
	Settings   workhours.Settings
	Projection timer.Projection
	// HasProjection is false when the standard end time does not parse.
	HasProjection bool
	Countdown     timer.Countdown
}

// DayTypeRecord describes an override for listing.
type DayTypeRecord struct {
	Date    string
	Type    daytype.DayType
	Default daytype.DayType
}

// ImportResult summarizes an import.
type ImportResult struct {
	Entries   int
	Overrides int
	Months    []string
}
