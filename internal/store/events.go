package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddEvent inserts an event and returns its id.
func (s *SQLiteStore) AddEvent(ctx context.Context, e *Event) (int64, error) {
	if e.Name == "" {
		return 0, fmt.Errorf("event name is required")
	}
	if e.ReminderMinutes < 0 {
		return 0, fmt.Errorf("reminder minutes must be non-negative, got %d", e.ReminderMinutes)
	}

	var endTime sql.NullString
	if e.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*e.EndTime), Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_name, start_time, end_time, location, reminder_minutes)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Name, formatTime(e.StartTime), endTime, e.Location, e.ReminderMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting event id: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetEvent fetches one event by id.
func (s *SQLiteStore) GetEvent(ctx context.Context, id int64) (*Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, event_name, start_time, end_time, location, reminder_minutes, created_at
		 FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d not found", id)
	}
	return e, err
}

// ListEvents returns events ordered by start time, optionally restricted to
// one calendar day.
func (s *SQLiteStore) ListEvents(ctx context.Context, opts ListOpts) ([]*Event, error) {
	query := `SELECT id, event_name, start_time, end_time, location, reminder_minutes, created_at
	          FROM events`
	args := []any{}
	if opts.Day != nil {
		query += ` WHERE date(start_time) = ?`
		args = append(args, opts.Day.Format(DayLayout))
	}
	query += ` ORDER BY start_time`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// UpdateEvent rewrites every mutable column of an existing event.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, e *Event) error {
	if e.ID == 0 {
		return fmt.Errorf("event id is required")
	}

	var endTime sql.NullString
	if e.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*e.EndTime), Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE events
		 SET event_name = ?, start_time = ?, end_time = ?, location = ?, reminder_minutes = ?
		 WHERE id = ?`,
		e.Name, formatTime(e.StartTime), endTime, e.Location, e.ReminderMinutes, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %d not found", e.ID)
	}
	return nil
}

// DeleteEvent removes an event by id.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %d not found", id)
	}
	return nil
}

// SearchEvents finds events whose name or location matches the keyword,
// using FTS5 when available with a LIKE fallback for tokenizations FTS
// handles poorly.
func (s *SQLiteStore) SearchEvents(ctx context.Context, keyword string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.event_name, e.start_time, e.end_time, e.location, e.reminder_minutes, e.created_at
		 FROM events_fts
		 JOIN events e ON events_fts.rowid = e.id
		 WHERE events_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		keyword, limit,
	)
	if err == nil {
		defer rows.Close()
		results, scanErr := scanEvents(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	// Fallback: LIKE over both searchable columns.
	likePattern := "%" + keyword + "%"
	rows, err = s.db.QueryContext(ctx,
		`SELECT id, event_name, start_time, end_time, location, reminder_minutes, created_at
		 FROM events
		 WHERE event_name LIKE ? OR location LIKE ?
		 ORDER BY start_time
		 LIMIT ?`,
		likePattern, likePattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// DueReminders returns events whose reminder instant falls within the
// one-minute window starting at now. The window bounds double-fires across
// poller restarts.
func (s *SQLiteStore) DueReminders(ctx context.Context, now time.Time) ([]*Event, error) {
	nowStr := formatTime(now)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_name, start_time, end_time, location, reminder_minutes, created_at
		 FROM events
		 WHERE datetime(start_time, '-' || reminder_minutes || ' minutes') <= datetime(?)
		   AND datetime(?) < datetime(start_time, '-' || reminder_minutes || ' minutes', '+1 minute')
		 ORDER BY start_time`,
		nowStr, nowStr,
	)
	if err != nil {
		return nil, fmt.Errorf("querying due reminders: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Stats returns current database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{}
	nowStr := formatTime(time.Now())

	queries := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM events", nil, &stats.EventCount},
		{"SELECT COUNT(*) FROM events WHERE datetime(start_time) >= datetime(?)", []any{nowStr}, &stats.UpcomingCount},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("querying stats (%s): %w", q.query, err)
		}
	}

	// DB size only applies to file-based databases.
	if s.dbPath != ":memory:" {
		var pageCount, pageSize int64
		s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
		s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		stats.DBSizeBytes = pageCount * pageSize
	}
	return stats, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var (
		e         Event
		startStr  string
		endStr    sql.NullString
		location  sql.NullString
		createdAt time.Time
	)
	if err := row.Scan(&e.ID, &e.Name, &startStr, &endStr, &location, &e.ReminderMinutes, &createdAt); err != nil {
		return nil, err
	}

	start, err := parseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start time %q: %w", startStr, err)
	}
	e.StartTime = start

	if endStr.Valid && endStr.String != "" {
		end, err := parseTime(endStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing end time %q: %w", endStr.String, err)
		}
		e.EndTime = &end
	}

	e.Location = location.String
	e.CreatedAt = createdAt
	return &e, nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
