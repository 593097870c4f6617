// Package store provides the SQLite storage layer for lichviet.
//
// All schedule data lives in a single SQLite database file:
// - Events extracted from natural-language requests
// - An FTS5 full-text index over event names and locations
//
// Timestamps are exchanged as timezone-naive local strings with minute
// precision, matching what the extraction engine produces.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.lichviet/lichviet.db"

// TimeLayout is the storage format for event timestamps: timezone-naive
// local time with minute precision.
const TimeLayout = "2006-01-02T15:04"

// DayLayout is the storage format for calendar-day filters.
const DayLayout = "2006-01-02"

// Event is one stored schedule entry.
type Event struct {
	ID              int64
	Name            string
	StartTime       time.Time
	EndTime         *time.Time
	Location        string
	ReminderMinutes int
	CreatedAt       time.Time
}

// ListOpts controls filtering for ListEvents.
type ListOpts struct {
	// Day restricts results to events starting on one calendar day.
	Day *time.Time
	// Limit caps the result count; 0 means no cap.
	Limit int
}

// StoreStats holds observability statistics about the store.
type StoreStats struct {
	EventCount    int64
	UpcomingCount int64
	DBSizeBytes   int64
}

// Config holds configuration for Open.
type Config struct {
	DBPath string
}

// Store defines the event storage interface.
type Store interface {
	AddEvent(ctx context.Context, e *Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, opts ListOpts) ([]*Event, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, id int64) error
	SearchEvents(ctx context.Context, keyword string, limit int) ([]*Event, error)
	DueReminders(ctx context.Context, now time.Time) ([]*Event, error)
	Stats(ctx context.Context) (*StoreStats, error)
	Close() error
}

// SQLiteStore implements Store using SQLite + FTS5.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Open creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func Open(cfg Config) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}
