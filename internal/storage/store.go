// Package storage persists the application snapshot. Two backends are
// available: a JSON Lines file (the default) and a SQLite database.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xolan/worktimer/internal/osutil"
	"github.com/xolan/worktimer/internal/snapshot"
)

const (
	// BackendJSONL selects the JSON Lines file store.
	BackendJSONL = "jsonl"
	// BackendSQLite selects the SQLite store.
	BackendSQLite = "sqlite"

	// DataFile is the name of the JSON Lines storage file
	DataFile = "data.jsonl"
	// DatabaseFile is the name of the SQLite database file
	DatabaseFile = "worktimer.db"
)

// Store loads and saves the complete snapshot.
type Store interface {
	// Load reads the persisted snapshot. A missing file yields an empty
	// snapshot with default settings.
	Load(ctx context.Context) (LoadResult, error)
	// Save replaces everything persisted with s. The previous state is
	// kept as a rotating backup.
	Save(ctx context.Context, s snapshot.Snapshot) error
	// Path returns the file backing the store.
	Path() string
	// Describe returns a short human readable description.
	Describe() string
	// Close releases any resources held by the store. A closed store
	// reopens itself on the next Load or Save.
	Close() error
}

// ParseWarning represents a warning about a corrupted or malformed record
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// LoadResult contains the loaded snapshot and warnings about any records
// that had to be skipped.
type LoadResult struct {
	Snapshot snapshot.Snapshot
	Warnings []ParseWarning
}

// GetStoragePath returns the path of the data file for the given backend.
// An empty dataDir means the application config directory.
func GetStoragePath(backend, dataDir string) (string, error) {
	switch backend {
	case "", BackendJSONL:
		return osutil.AppFile(dataDir, DataFile)
	case BackendSQLite:
		return osutil.AppFile(dataDir, DatabaseFile)
	}
	return "", fmt.Errorf("unknown storage backend '%s'", backend)
}

// Open returns the store for backend located in dataDir.
func Open(backend, dataDir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := GetStoragePath(backend, dataDir)
	if err != nil {
		return nil, err
	}

	if backend == BackendSQLite {
		return NewSQLiteStore(path, logger), nil
	}
	return NewJSONLStore(path, logger), nil
}
