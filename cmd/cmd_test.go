package cmd

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/abhisek/streaks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func squatFrames(t *testing.T, reps int) string {
	t.Helper()
	frame := func(deg float64) string {
		rad := deg * math.Pi / 180
		b, err := json.Marshal(map[string]any{
			"landmarks": map[string]any{
				"left_hip":   map[string]float64{"x": 0.5, "y": 0.3, "score": 0.9},
				"left_knee":  map[string]float64{"x": 0.5, "y": 0.5, "score": 0.9},
				"left_ankle": map[string]float64{"x": 0.5 + 0.2*math.Sin(rad), "y": 0.5 - 0.2*math.Cos(rad), "score": 0.9},
			},
		})
		require.NoError(t, err)
		return string(b)
	}
	lines := []string{frame(170)}
	for i := 0; i < reps; i++ {
		lines = append(lines, frame(70), "", frame(170))
	}
	p := filepath.Join(t.TempDir(), "frames.jsonl")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func TestCommands_EndToEnd(t *testing.T) {
	t.Setenv("STREAKS_DB", "")
	t.Setenv("STREAKS_PUSHUP_GOAL", "")
	t.Setenv("STREAKS_SQUAT_GOAL", "")
	db := filepath.Join(t.TempDir(), "streaks.db")
	ctx := context.Background()
	today := calendar.KeyIn(time.Now(), time.UTC)

	require.NoError(t, run(t, "log", "pushup", "20", "--db", db, "--tz", "UTC"))
	require.NoError(t, run(t, "replay", "pose", squatFrames(t, 30), "--exercise", "squat", "--record", "--plain", "--db", db, "--tz", "UTC"))
	require.NoError(t, run(t, "stats", "--json", "--db", db, "--tz", "UTC"))
	require.NoError(t, run(t, "history", "--db", db, "--tz", "UTC"))
	require.NoError(t, run(t, "history", "--days", "7", "--db", db, "--tz", "UTC"))

	st, err := store.Open(db)
	require.NoError(t, err)
	day, err := st.DayRepo().GetDay(ctx, today)
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 20, day.Totals.Pushup)
	assert.Equal(t, 30, day.Totals.Squat)
	assert.True(t, day.MetGoal)

	sessions, err := st.SessionRepo().RecentSessions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	require.NoError(t, st.Close())

	assert.Error(t, run(t, "reset", "--db", db))
	require.NoError(t, run(t, "reset", "--yes", "--db", db))

	st, err = store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	days, err := st.DayRepo().AllDays(ctx)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestReplayMotion_Plain(t *testing.T) {
	db := filepath.Join(t.TempDir(), "streaks.db")
	csv := filepath.Join(t.TempDir(), "samples.csv")
	rows := "t_ms,z\n0,0\n100,-0.5\n200,0.5\n300,-0.5\n800,-0.5\n900,0.5\n1500,0.05\n"
	require.NoError(t, os.WriteFile(csv, []byte(rows), 0o644))

	require.NoError(t, run(t, "replay", "motion", csv, "--exercise", "pushup", "--record", "--plain", "--db", db, "--tz", "UTC"))

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	day, err := st.DayRepo().GetDay(context.Background(), calendar.KeyIn(time.Now(), time.UTC))
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 2, day.Totals.Pushup)
}

func TestCommands_BadInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "streaks.db")

	assert.Error(t, run(t, "log", "plank", "10", "--db", db))
	assert.Error(t, run(t, "log", "squat", "ten", "--db", db))
	assert.Error(t, run(t, "stats", "--as-of", "yesterday", "--db", db))
	assert.Error(t, run(t, "replay", "pose", filepath.Join(t.TempDir(), "missing.jsonl"), "--db", db))
	assert.Error(t, run(t, "stats", "--tz", "Nowhere/Special", "--db", db))
}
