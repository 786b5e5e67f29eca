package service

import (
	"context"
	"log/slog"

	"github.com/xolan/worktimer/internal/storage"
)

// StorageService reports on and repairs the data store.
type StorageService struct {
	state  *State
	logger *slog.Logger
}

// NewStorageService creates a new StorageService
func NewStorageService(state *State, logger *slog.Logger) *StorageService {
	return &StorageService{state: state, logger: logger}
}

// Describe returns a description of the store in use.
func (s *StorageService) Describe() string {
	return s.state.Store().Describe()
}

// Path returns the data file path.
func (s *StorageService) Path() string {
	return s.state.Store().Path()
}

// Warnings returns the corrupted records skipped on the last load.
func (s *StorageService) Warnings(ctx context.Context) ([]storage.ParseWarning, error) {
	return s.state.Warnings(ctx)
}

// Validate inspects the data file. The JSON Lines store is checked line by
// line; other stores report the records skipped while loading.
func (s *StorageService) Validate(ctx context.Context) (storage.StorageHealth, error) {
	if _, ok := s.state.Store().(*storage.JSONLStore); ok {
		return storage.ValidateStorage(s.Path())
	}

	if err := s.state.Load(ctx); err != nil {
		return storage.StorageHealth{}, err
	}
	warnings, err := s.state.Warnings(ctx)
	if err != nil {
		return storage.StorageHealth{}, err
	}

	snap, err := s.state.Snapshot(ctx)
	if err != nil {
		return storage.StorageHealth{}, err
	}
	// one settings record plus one per entry and override
	records := 1 + len(snap.TimeEntries) + len(snap.DayTypeMap)

	return storage.StorageHealth{
		TotalLines:       records + len(warnings),
		ValidRecords:     records,
		CorruptedRecords: len(warnings),
		Warnings:         warnings,
	}, nil
}

// ListBackups returns the available backups, most recent first.
func (s *StorageService) ListBackups() ([]storage.BackupInfo, error) {
	return storage.ListBackups(s.Path())
}

// Restore replaces the data with backup n and reloads it.
func (s *StorageService) Restore(ctx context.Context, n int) error {
	if err := s.state.restore(ctx, n); err != nil {
		return err
	}
	s.logger.Info("restored backup", "number", n, "store", s.Describe())
	return nil
}
