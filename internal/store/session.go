package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRecord is the persisted summary of one finished workout.
type SessionRecord struct {
	ID        string
	Exercise  string
	Mode      string
	Day       string // local-day key the reps were credited to
	Reps      int
	StartedAt time.Time
	EndedAt   time.Time
}

// SessionRepo provides append access to finished workout sessions.
type SessionRepo interface {
	// AppendSession records a finished session.
	AppendSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns up to n sessions, newest first.
	RecentSessions(ctx context.Context, n int) ([]SessionRecord, error)
}

// sessionRepo implements SessionRepo with raw SQL.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, exercise, mode, day, reps, started_ms, ended_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Exercise, rec.Mode, rec.Day, rec.Reps,
		rec.StartedAt.UnixMilli(), rec.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) RecentSessions(ctx context.Context, n int) ([]SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, exercise, mode, day, reps, started_ms, ended_ms
		FROM workout_sessions ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec                SessionRecord
			startedMs, endedMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Exercise, &rec.Mode, &rec.Day, &rec.Reps, &startedMs, &endedMs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMs).UTC()
		rec.EndedAt = time.UnixMilli(endedMs).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
