package store

import (
	"fmt"
	"strings"
)

// migrate creates all tables if they don't exist.
func (s *SQLiteStore) migrate() error {
	bootstrapDone, err := s.isMetaFlagEnabled("schema_bootstrap_complete")
	if err != nil {
		return fmt.Errorf("checking bootstrap state: %w", err)
	}
	if bootstrapDone {
		return nil
	}

	if err := s.runBootstrapDDL(); err != nil {
		return err
	}
	if err := s.setMetaFlag("schema_bootstrap_complete"); err != nil {
		return fmt.Errorf("marking bootstrap complete: %w", err)
	}
	return nil
}

// runBootstrapDDL creates the full schema inside one transaction.
func (s *SQLiteStore) runBootstrapDDL() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Core events table
		`CREATE TABLE IF NOT EXISTS events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			event_name       TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			end_time         TEXT,
			location         TEXT,
			reminder_minutes INTEGER DEFAULT 0,
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(start_time)`,

		// FTS5 index over the searchable columns
		`CREATE VIRTUAL TABLE IF NOT EXISTS events_fts USING fts5(
			event_name,
			location,
			content=events,
			content_rowid=id,
			tokenize='unicode61'
		)`,

		// FTS sync triggers
		`CREATE TRIGGER IF NOT EXISTS events_ai AFTER INSERT ON events BEGIN
			INSERT INTO events_fts(rowid, event_name, location)
			VALUES (new.id, new.event_name, COALESCE(new.location, ''));
		END`,

		`CREATE TRIGGER IF NOT EXISTS events_ad AFTER DELETE ON events BEGIN
			INSERT INTO events_fts(events_fts, rowid, event_name, location)
			VALUES('delete', old.id, old.event_name, COALESCE(old.location, ''));
		END`,

		`CREATE TRIGGER IF NOT EXISTS events_au AFTER UPDATE ON events BEGIN
			INSERT INTO events_fts(events_fts, rowid, event_name, location)
			VALUES('delete', old.id, old.event_name, COALESCE(old.location, ''));
			INSERT INTO events_fts(rowid, event_name, location)
			VALUES (new.id, new.event_name, COALESCE(new.location, ''));
		END`,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning bootstrap transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			// FTS5 may be compiled out; the LIKE fallback covers search.
			if strings.Contains(stmt, "fts5") || strings.Contains(stmt, "events_fts") {
				continue
			}
			return fmt.Errorf("bootstrap DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bootstrap: %w", err)
	}
	return nil
}

func (s *SQLiteStore) isMetaFlagEnabled(key string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type='table' AND name='meta'`,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	var value string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return false, nil
	}
	return value == "1", nil
}

func (s *SQLiteStore) setMetaFlag(key string) error {
	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, '1')
		 ON CONFLICT(key) DO UPDATE SET value = '1'`, key)
	return err
}
