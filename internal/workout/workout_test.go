package workout

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/streaks/internal/detector"
	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/motion"
	"github.com/abhisek/streaks/internal/pose"
	"github.com/abhisek/streaks/internal/stats"
	"github.com/abhisek/streaks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kneePose places hip, knee and ankle so the knee angle is deg degrees.
func kneePose(deg float64) pose.Pose {
	rad := deg * math.Pi / 180
	return pose.Pose{
		pose.LeftHip:   {X: 0.5, Y: 0.3},
		pose.LeftKnee:  {X: 0.5, Y: 0.5},
		pose.LeftAnkle: {X: 0.5 + 0.2*math.Sin(rad), Y: 0.5 - 0.2*math.Cos(rad)},
	}
}

func squatPoses(reps int) []pose.Pose {
	out := []pose.Pose{kneePose(170)}
	for i := 0; i < reps; i++ {
		out = append(out, kneePose(70), kneePose(170))
	}
	return out
}

type memDays map[string]stats.DayRecord

func (m memDays) GetDay(_ context.Context, date string) (*stats.DayRecord, error) {
	rec, ok := m[date]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m memDays) PutDay(_ context.Context, rec stats.DayRecord) error {
	m[rec.Date] = rec
	return nil
}

type memLog struct{ recs []store.SessionRecord }

func (l *memLog) AppendSession(_ context.Context, rec store.SessionRecord) error {
	l.recs = append(l.recs, rec)
	return nil
}

type failingDays struct{}

func (failingDays) GetDay(context.Context, string) (*stats.DayRecord, error) {
	return nil, errors.New("disk on fire")
}
func (failingDays) PutDay(context.Context, stats.DayRecord) error { return nil }

func fixedRecorder(days DayStore, log SessionLog, at time.Time) *Recorder {
	r := NewRecorder(days, log, exercise.DefaultGoals(), time.UTC)
	r.now = func() time.Time { return at }
	return r
}

func TestNewPoseSession(t *testing.T) {
	s, err := NewPoseSession(exercise.Pushup, detector.ModeSide)
	require.NoError(t, err)
	assert.Equal(t, ModePose, s.Mode)
	assert.Equal(t, detector.ModeSide, s.PushupMode)
	assert.Len(t, s.ID, 36)

	other, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)

	_, err = NewPoseSession(exercise.Pushup, "overhead")
	assert.Error(t, err)

	_, err = NewPoseSession("plank", detector.ModeSide)
	assert.ErrorIs(t, err, exercise.ErrUnknownExercise)
}

func TestRunPose_CountsSquats(t *testing.T) {
	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)

	frames := squatPoses(3)
	var seen []int
	steps := 0
	err = s.RunPose(context.Background(), pose.NewSliceSource(frames), func(r detector.Result) {
		steps++
		if r.RepOccurred {
			seen = append(seen, r.Reps)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Reps())
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, len(frames), steps)
	assert.Greater(t, s.Tracking(), 0.0)
}

func TestRunPose_Cancelled(t *testing.T) {
	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.RunPose(ctx, pose.NewSliceSource(squatPoses(2)), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Reps())
}

func TestTracking_DropsOnRejectedFrames(t *testing.T) {
	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)

	s.OnPose(kneePose(170))
	high := s.Tracking()
	s.OnPose(pose.Pose{})
	assert.Less(t, s.Tracking(), high)
	assert.Equal(t, 0.0, s.Last().Confidence)
}

func TestRunMotion(t *testing.T) {
	s, err := NewMotionSession(exercise.Pushup)
	require.NoError(t, err)

	ch := make(chan motion.Sample, 8)
	for _, smp := range []motion.Sample{
		{Z: 0, AtMs: 0},
		{Z: -0.5, AtMs: 100},
		{Z: 0.5, AtMs: 200},   // rep 1
		{Z: -0.5, AtMs: 300},  // debounced
		{Z: -0.5, AtMs: 800},  // down
		{Z: 0.5, AtMs: 900},   // rep 2
		{Z: 0.05, AtMs: 1500}, // inside hysteresis band
	} {
		ch <- smp
	}
	close(ch)

	var reps []int64
	steps := 0
	require.NoError(t, s.RunMotion(context.Background(), ch, func(smp motion.Sample, rep bool) {
		steps++
		if rep {
			reps = append(reps, smp.AtMs)
		}
	}))
	assert.Equal(t, []int64{200, 900}, reps)
	assert.Equal(t, 7, steps)
	assert.Equal(t, 2, s.Reps())
}

func TestSession_AdjustWhileRunning(t *testing.T) {
	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.Adjust(1)
			_ = s.Tracking()
		}
	}()
	require.NoError(t, s.RunPose(context.Background(), pose.NewSliceSource(squatPoses(3)), nil))
	wg.Wait()

	assert.Equal(t, 53, s.Reps())
}

func TestRunMotion_Cancelled(t *testing.T) {
	s, err := NewMotionSession(exercise.Squat)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.RunMotion(ctx, make(chan motion.Sample), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdjust_FloorsAtZero(t *testing.T) {
	s, err := NewManualSession(exercise.Squat)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Adjust(5))
	assert.Equal(t, 6, s.Adjust(1))
	assert.Equal(t, 0, s.Adjust(-10))
	assert.Equal(t, 1, s.Adjust(1))
	assert.False(t, s.OnSample(motion.Sample{Z: -1}))
	assert.Equal(t, 1, s.OnPose(kneePose(70)).Reps)
}

func TestAdjust_OnTopOfDetected(t *testing.T) {
	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)
	require.NoError(t, s.RunPose(context.Background(), pose.NewSliceSource(squatPoses(2)), nil))

	assert.Equal(t, 1, s.Adjust(-1))
	assert.Equal(t, 0, s.Adjust(-5))
	assert.Equal(t, 1, s.Adjust(1))
}

func TestRecorder_RecordMergesAndLogs(t *testing.T) {
	days := memDays{}
	log := &memLog{}
	at := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)
	r := fixedRecorder(days, log, at)
	ctx := context.Background()

	push, err := NewManualSession(exercise.Pushup)
	require.NoError(t, err)
	push.Adjust(20)
	rec, err := r.Record(ctx, push)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", rec.Date)
	assert.False(t, rec.MetGoal, "squat goal still open")

	squat, err := NewManualSession(exercise.Squat)
	require.NoError(t, err)
	squat.Adjust(30)
	rec, err = r.Record(ctx, squat)
	require.NoError(t, err)
	assert.True(t, rec.MetGoal)
	assert.Equal(t, stats.Totals{Pushup: 20, Squat: 30}, rec.Totals)
	assert.Equal(t, rec, days["2026-10-16"])

	require.Len(t, log.recs, 2)
	assert.Equal(t, push.ID, log.recs[0].ID)
	assert.Equal(t, "manual", log.recs[1].Mode)
	assert.Equal(t, 30, log.recs[1].Reps)
}

func TestRecorder_UsesLocalDay(t *testing.T) {
	days := memDays{}
	at := time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC)
	r := fixedRecorder(days, nil, at)
	r.Location = time.FixedZone("UTC-5", -5*3600)

	s, err := NewManualSession(exercise.Pushup)
	require.NoError(t, err)
	s.Adjust(3)
	rec, err := r.Record(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", rec.Date)
	assert.Equal(t, "2026-10-16", r.Today())
}

func TestRecorder_ZeroRepsNotWritten(t *testing.T) {
	days := memDays{}
	log := &memLog{}
	r := fixedRecorder(days, log, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))

	s, err := NewManualSession(exercise.Squat)
	require.NoError(t, err)
	rec, err := r.Record(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", rec.Date)
	assert.Empty(t, days)
	assert.Empty(t, log.recs)
}

func TestRecorder_AddReps(t *testing.T) {
	days := memDays{"2026-10-10": {Date: "2026-10-10", Totals: stats.Totals{Pushup: 25, Squat: 10}}}
	r := fixedRecorder(days, nil, time.Now())
	ctx := context.Background()

	rec, err := r.AddReps(ctx, "2026-10-10", exercise.Squat, 20)
	require.NoError(t, err)
	assert.True(t, rec.MetGoal)

	rec, err = r.AddReps(ctx, "2026-10-10", exercise.Squat, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Totals.Squat)
	assert.False(t, rec.MetGoal)

	_, err = r.AddReps(ctx, "10/10/2026", exercise.Squat, 1)
	assert.Error(t, err)
}

func TestRecorder_LoadError(t *testing.T) {
	r := fixedRecorder(failingDays{}, nil, time.Now())
	_, err := r.AddReps(context.Background(), "2026-10-10", exercise.Pushup, 1)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestRecorder_SQLiteStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "streaks.db"))
	require.NoError(t, err)
	defer st.Close()

	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	r := fixedRecorder(st.DayRepo(), st.SessionRepo(), at)

	s, err := NewPoseSession(exercise.Squat, "")
	require.NoError(t, err)
	require.NoError(t, s.RunPose(context.Background(), pose.NewSliceSource(squatPoses(4)), nil))
	_, err = r.Record(context.Background(), s)
	require.NoError(t, err)

	got, err := st.DayRepo().GetDay(context.Background(), "2026-10-16")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Totals.Squat)

	recent, err := st.SessionRepo().RecentSessions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, s.ID, recent[0].ID)
	assert.Equal(t, "pose", recent[0].Mode)
}
