package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/stats"
	"github.com/abhisek/streaks/internal/store"
)

// DayStore reads and writes the per-day totals record.
type DayStore interface {
	GetDay(ctx context.Context, date string) (*stats.DayRecord, error)
	PutDay(ctx context.Context, rec stats.DayRecord) error
}

// SessionLog keeps a history of finished sessions.
type SessionLog interface {
	AppendSession(ctx context.Context, rec store.SessionRecord) error
}

// Recorder credits reps to local days and keeps each day's goal flag current.
type Recorder struct {
	Days     DayStore
	Sessions SessionLog // optional
	Goals    exercise.Goals
	Location *time.Location // nil means time.Local

	now func() time.Time
}

// NewRecorder creates a Recorder.
func NewRecorder(days DayStore, sessions SessionLog, goals exercise.Goals, loc *time.Location) *Recorder {
	return &Recorder{Days: days, Sessions: sessions, Goals: goals, Location: loc}
}

func (r *Recorder) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Recorder) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// Today returns the local-day key for the current instant.
func (r *Recorder) Today() string {
	return calendar.KeyIn(r.clock(), r.location())
}

// Record credits a finished session to the local day it ended on and logs
// it. Sessions with no reps are not recorded.
func (r *Recorder) Record(ctx context.Context, s *Session) (stats.DayRecord, error) {
	ended := r.clock()
	day := calendar.KeyIn(ended, r.location())

	reps := s.Reps()
	if reps == 0 {
		return r.load(ctx, day)
	}

	rec, err := r.AddReps(ctx, day, s.Kind, reps)
	if err != nil {
		return stats.DayRecord{}, err
	}

	if r.Sessions != nil {
		err := r.Sessions.AppendSession(ctx, store.SessionRecord{
			ID:        s.ID,
			Exercise:  string(s.Kind),
			Mode:      string(s.Mode),
			Day:       day,
			Reps:      reps,
			StartedAt: s.StartedAt,
			EndedAt:   ended,
		})
		if err != nil {
			return rec, fmt.Errorf("record session: %w", err)
		}
	}
	return rec, nil
}

// AddReps merges n reps of kind into the record for day and recomputes
// whether the day met its goals. n may be negative; totals stop at zero.
func (r *Recorder) AddReps(ctx context.Context, day string, kind exercise.Kind, n int) (stats.DayRecord, error) {
	if _, err := calendar.ParseDay(day); err != nil {
		return stats.DayRecord{}, err
	}
	rec, err := r.load(ctx, day)
	if err != nil {
		return stats.DayRecord{}, err
	}

	rec.Totals = rec.Totals.Add(kind, n)
	if rec.Totals.Pushup < 0 {
		rec.Totals.Pushup = 0
	}
	if rec.Totals.Squat < 0 {
		rec.Totals.Squat = 0
	}
	rec.MetGoal = r.Goals.Met(rec.Totals.ByKind())

	if err := r.Days.PutDay(ctx, rec); err != nil {
		return stats.DayRecord{}, fmt.Errorf("record %s: %w", day, err)
	}
	return rec, nil
}

func (r *Recorder) load(ctx context.Context, day string) (stats.DayRecord, error) {
	existing, err := r.Days.GetDay(ctx, day)
	if err != nil {
		return stats.DayRecord{}, fmt.Errorf("load %s: %w", day, err)
	}
	if existing == nil {
		return stats.DayRecord{Date: day}, nil
	}
	return *existing, nil
}
