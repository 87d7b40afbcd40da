package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/abhisek/streaks/internal/stats"
)

// DayRepo persists one totals record per local day.
type DayRepo interface {
	// GetDay returns the record for date, or nil if none exists.
	GetDay(ctx context.Context, date string) (*stats.DayRecord, error)

	// PutDay inserts or replaces the record for rec.Date.
	PutDay(ctx context.Context, rec stats.DayRecord) error

	// AllDays returns every record ordered by date.
	AllDays(ctx context.Context) ([]stats.DayRecord, error)

	// DaysBetween returns records with from <= date <= to, ordered by date.
	DaysBetween(ctx context.Context, from, to string) ([]stats.DayRecord, error)

	// DeleteAll removes every day and session record.
	DeleteAll(ctx context.Context) error
}

// dayRepo implements DayRepo with raw SQL.
type dayRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *dayRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *dayRepo) GetDay(ctx context.Context, date string) (*stats.DayRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT date, pushup, squat, met_goal FROM day_totals WHERE date = ?`, date)
	rec, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query day %s: %w", date, err)
	}
	return &rec, nil
}

func (r *dayRepo) PutDay(ctx context.Context, rec stats.DayRecord) error {
	if _, err := calendar.ParseDay(rec.Date); err != nil {
		return fmt.Errorf("put day: %w", err)
	}
	if rec.Totals.Pushup < 0 || rec.Totals.Squat < 0 {
		return fmt.Errorf("put day %s: negative totals %+v", rec.Date, rec.Totals)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO day_totals (date, pushup, squat, met_goal, updated_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			pushup = excluded.pushup,
			squat = excluded.squat,
			met_goal = excluded.met_goal,
			updated_ms = excluded.updated_ms`,
		rec.Date, rec.Totals.Pushup, rec.Totals.Squat, boolToInt(rec.MetGoal), r.clock().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save day %s: %w", rec.Date, err)
	}
	return nil
}

func (r *dayRepo) AllDays(ctx context.Context) ([]stats.DayRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, pushup, squat, met_goal FROM day_totals ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	return collectDays(rows)
}

func (r *dayRepo) DaysBetween(ctx context.Context, from, to string) ([]stats.DayRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, pushup, squat, met_goal FROM day_totals
		 WHERE date >= ? AND date <= ? ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query days %s..%s: %w", from, to, err)
	}
	return collectDays(rows)
}

func (r *dayRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM day_totals`, `DELETE FROM workout_sessions`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(s scanner) (stats.DayRecord, error) {
	var (
		rec stats.DayRecord
		met int
	)
	if err := s.Scan(&rec.Date, &rec.Totals.Pushup, &rec.Totals.Squat, &met); err != nil {
		return stats.DayRecord{}, err
	}
	rec.MetGoal = met != 0
	return rec, nil
}

func collectDays(rows *sql.Rows) ([]stats.DayRecord, error) {
	defer rows.Close()
	var out []stats.DayRecord
	for rows.Next() {
		rec, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
