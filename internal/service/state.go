package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/storage"
)

// Versions counts changes to each input of the monthly aggregation. A
// version only ever grows, so a (month, Versions) pair identifies one
// aggregation result.
type Versions struct {
	Entries   uint64
	Overrides uint64
	Settings  uint64
}

type change uint8

const (
	changeEntries change = 1 << iota
	changeOverrides
	changeSettings

	changeAll = changeEntries | changeOverrides | changeSettings
)

// State is the single owner of the in-memory snapshot. Every mutation goes
// through it: the new snapshot is persisted first and only then published,
// together with a bump of the affected versions.
type State struct {
	store  storage.Store
	logger *slog.Logger

	mu       sync.RWMutex
	loaded   bool
	snap     snapshot.Snapshot
	versions Versions
	warnings []storage.ParseWarning
}

// NewState returns a State backed by store. Nothing is read until first use.
func NewState(store storage.Store, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{store: store, logger: logger, snap: snapshot.New()}
}

// Store returns the underlying store.
func (s *State) Store() storage.Store {
	return s.store
}

// Load (re)reads the snapshot from the store and invalidates every version.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *State) loadLocked(ctx context.Context) error {
	result, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	s.snap = result.Snapshot
	s.warnings = result.Warnings
	s.loaded = true
	s.bump(changeAll)

	if len(result.Warnings) > 0 {
		s.logger.Warn("skipped corrupted records", "count", len(result.Warnings), "store", s.store.Describe())
	}
	return nil
}

func (s *State) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// Read calls fn with the current snapshot and versions while holding a read
// lock. fn must not modify or retain the snapshot's maps.
func (s *State) Read(ctx context.Context, fn func(snap snapshot.Snapshot, v Versions) error) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.snap, s.versions)
}

// Snapshot returns a deep copy of the current snapshot.
func (s *State) Snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	var out snapshot.Snapshot
	err := s.Read(ctx, func(snap snapshot.Snapshot, _ Versions) error {
		out = snap.Clone()
		return nil
	})
	return out, err
}

// Versions returns the current versions.
func (s *State) Versions() Versions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions
}

// Warnings returns the corrupted-record warnings of the last load.
func (s *State) Warnings(ctx context.Context) ([]storage.ParseWarning, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]storage.ParseWarning(nil), s.warnings...), nil
}

// update applies fn to a copy of the snapshot, saves the copy and publishes
// it. If fn or the save fails the current snapshot is left untouched.
func (s *State) update(ctx context.Context, c change, fn func(snap *snapshot.Snapshot) error) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Normalize()

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	s.snap = next
	s.warnings = nil
	s.bump(c)
	return nil
}

// replace swaps in a whole new snapshot.
func (s *State) replace(ctx context.Context, snap snapshot.Snapshot) error {
	return s.update(ctx, changeAll, func(next *snapshot.Snapshot) error {
		*next = snap.Clone()
		return nil
	})
}

// restore copies backup n over the data file and reloads it.
func (s *State) restore(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := storage.RestoreBackup(s.store.Path(), n); err != nil {
		return err
	}
	return s.loadLocked(ctx)
}

func (s *State) bump(c change) {
	if c&changeEntries != 0 {
		s.versions.Entries++
	}
	if c&changeOverrides != 0 {
		s.versions.Overrides++
	}
	if c&changeSettings != 0 {
		s.versions.Settings++
	}
}
