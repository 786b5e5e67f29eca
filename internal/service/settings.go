package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/workhours"
)

// SettingsService manages the work-hour settings stored with the data.
type SettingsService struct {
	state  *State
	logger *slog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(state *State, logger *slog.Logger) *SettingsService {
	return &SettingsService{state: state, logger: logger}
}

// Get returns a copy of the current settings.
func (s *SettingsService) Get(ctx context.Context) (workhours.Settings, error) {
	var out workhours.Settings
	err := s.state.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		out = snap.Settings.Clone()
		return nil
	})
	return out, err
}

// Update applies fn to a copy of the settings and saves the result if it
// is valid.
func (s *SettingsService) Update(ctx context.Context, fn func(*workhours.Settings) error) (workhours.Settings, error) {
	var out workhours.Settings
	err := s.state.update(ctx, changeSettings, func(snap *snapshot.Snapshot) error {
		next := snap.Settings.Clone()
		if err := fn(&next); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		snap.Settings = next
		out = next.Clone()
		return nil
	})
	if err != nil {
		return workhours.Settings{}, err
	}

	s.logger.Debug("settings updated",
		"standard", out.StandardWorkTime.String(),
		"max_weekend_hours", out.MaxWeekendHours)
	return out, nil
}

// Reset restores the default settings. Entries and day types are kept.
func (s *SettingsService) Reset(ctx context.Context) (workhours.Settings, error) {
	return s.Update(ctx, func(st *workhours.Settings) error {
		*st = workhours.DefaultSettings()
		return nil
	})
}
