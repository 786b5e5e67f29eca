package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/xolan/worktimer/internal/daytype"
	"github.com/xolan/worktimer/internal/entry"
	"github.com/xolan/worktimer/internal/snapshot"
	"github.com/xolan/worktimer/internal/workhours"
)

const settingsKey = "work_hours"

// SQLiteStore keeps the snapshot in a SQLite database with one table per
// kind of data. Saving replaces every row inside a single transaction.
type SQLiteStore struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore returns a store backed by the database at path. The
// database is opened on first use.
func NewSQLiteStore(path string, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{path: path, logger: logger}
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Describe returns a short description of the store.
func (s *SQLiteStore) Describe() string { return "SQLite database " + s.path }

// Close closes the database if it is open.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	return db, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS time_entries (
			date TEXT PRIMARY KEY,
			start_time TEXT NOT NULL DEFAULT '',
			end_time TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS day_types (
			date TEXT PRIMARY KEY,
			day_type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// isBusy reports whether err means another connection holds the database.
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func (s *SQLiteStore) withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.MaxDelay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("database busy, retrying",
				"op", op,
				"attempt", n+1,
				"error", err)
		}),
		retry.RetryIf(isBusy),
	)
}

// Load reads every table into a snapshot. Rows that cannot be used are
// reported as warnings; LineNumber holds the row position in its table.
func (s *SQLiteStore) Load(ctx context.Context) (LoadResult, error) {
	result := LoadResult{Snapshot: snapshot.New(), Warnings: []ParseWarning{}}

	db, err := s.open()
	if err != nil {
		return result, fmt.Errorf("failed to open database: %w", err)
	}

	err = s.withRetry(ctx, "load", func() error {
		result = LoadResult{Snapshot: snapshot.New(), Warnings: []ParseWarning{}}
		return loadInto(ctx, db, &result)
	})
	if err != nil {
		return result, fmt.Errorf("failed to load snapshot: %w", err)
	}

	result.Snapshot.Normalize()
	s.logger.Debug("loaded snapshot",
		"path", s.path,
		"entries", len(result.Snapshot.TimeEntries),
		"overrides", len(result.Snapshot.DayTypeMap),
		"warnings", len(result.Warnings))
	return result, nil
}

func loadInto(ctx context.Context, db *sql.DB, result *LoadResult) error {
	snap := &result.Snapshot

	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, settingsKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		var settings workhours.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{Content: raw, Error: err.Error()})
		} else {
			snap.Settings = settings
		}
	}

	rows, err := db.QueryContext(ctx, `SELECT date, start_time, end_time FROM time_entries ORDER BY date`)
	if err != nil {
		return err
	}
	row := 0
	for rows.Next() {
		row++
		var date, start, end string
		if err := rows.Scan(&date, &start, &end); err != nil {
			_ = rows.Close()
			return err
		}
		if err := checkDate(date); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: row,
				Content:    fmt.Sprintf("time_entries: %s %s-%s", date, start, end),
				Error:      err.Error(),
			})
			continue
		}
		snap.TimeEntries[date] = entry.TimeEntry{Start: start, End: end}
	}
	if err := rows.Close(); err != nil {
		return err
	}

	rows, err = db.QueryContext(ctx, `SELECT date, day_type FROM day_types ORDER BY date`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	row = 0
	for rows.Next() {
		row++
		var date, value string
		if err := rows.Scan(&date, &value); err != nil {
			return err
		}
		t := daytype.DayType(value)
		if err := checkDate(date); err != nil || !t.Valid() {
			msg := fmt.Sprintf("unknown day type '%s'", value)
			if err != nil {
				msg = err.Error()
			}
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: row,
				Content:    fmt.Sprintf("day_types: %s %s", date, value),
				Error:      msg,
			})
			continue
		}
		snap.DayTypeMap[date] = t
	}
	return rows.Err()
}

// Save backs up the database file and replaces all rows with snap in one
// transaction. Busy and locked errors are retried with backoff.
func (s *SQLiteStore) Save(ctx context.Context, snap snapshot.Snapshot) error {
	db, err := s.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := CreateBackup(s.path); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	settings, err := json.Marshal(snap.Settings)
	if err != nil {
		return err
	}

	err = s.withRetry(ctx, "save", func() error {
		return replaceAll(ctx, db, snap, string(settings))
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug("saved snapshot", "path", s.path, "entries", len(snap.TimeEntries))
	return nil
}

func replaceAll(ctx context.Context, db *sql.DB, snap snapshot.Snapshot, settings string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"time_entries", "day_types", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (name, value) VALUES (?, ?)`, settingsKey, settings); err != nil {
		return err
	}

	for _, date := range snap.EntryDates() {
		e := snap.TimeEntries[date]
		if e.IsEmpty() {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO time_entries (date, start_time, end_time) VALUES (?, ?, ?)`,
			date, e.Start, e.End); err != nil {
			return err
		}
	}

	for _, date := range snap.DayTypeMap.Dates() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO day_types (date, day_type) VALUES (?, ?)`,
			date, string(snap.DayTypeMap[date])); err != nil {
			return err
		}
	}

	return tx.Commit()
}
