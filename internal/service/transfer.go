package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/xolan/worktimer/internal/snapshot"
)

// TransferService exports and imports the complete data set.
type TransferService struct {
	state  *State
	now    func() time.Time
	logger *slog.Logger
}

// NewTransferService creates a new TransferService
func NewTransferService(state *State, now func() time.Time, logger *slog.Logger) *TransferService {
	return &TransferService{state: state, now: now, logger: logger}
}

// Export writes every entry, override and the settings to w.
func (s *TransferService) Export(ctx context.Context, w io.Writer, format snapshot.Format) error {
	snap, err := s.state.Snapshot(ctx)
	if err != nil {
		return err
	}
	return snapshot.Encode(w, snap, format)
}

// ExportFile writes an export to path. An empty path uses the default file
// name for today in the current directory. Returns the path written.
func (s *TransferService) ExportFile(ctx context.Context, path string, format snapshot.Format) (string, error) {
	if path == "" {
		path = snapshot.ExportFileName(s.now(), format)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := s.Export(ctx, file, format); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	s.logger.Info("exported data", "path", path, "format", format)
	return path, nil
}

// Import replaces all data with the document read from r. The previous
// data is kept as a backup by the store.
func (s *TransferService) Import(ctx context.Context, r io.Reader, format snapshot.Format) (*ImportResult, error) {
	snap, err := snapshot.Decode(r, format)
	if err != nil {
		return nil, err
	}

	if err := s.state.replace(ctx, snap); err != nil {
		return nil, err
	}

	result := &ImportResult{
		Entries:   len(snap.TimeEntries),
		Overrides: len(snap.DayTypeMap),
		Months:    snap.Months(),
	}
	s.logger.Info("imported data", "entries", result.Entries, "overrides", result.Overrides)
	return result, nil
}

// ImportFile imports the document at path. An empty format is guessed from
// the file extension.
func (s *TransferService) ImportFile(ctx context.Context, path, format string) (*ImportResult, error) {
	f := snapshot.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = snapshot.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return s.Import(ctx, file, f)
}

// Reset deletes every entry and override and restores default settings.
// The previous data is kept as a backup by the store.
func (s *TransferService) Reset(ctx context.Context) error {
	if err := s.state.replace(ctx, snapshot.New()); err != nil {
		return err
	}
	s.logger.Info("all data reset")
	return nil
}
