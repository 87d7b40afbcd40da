// Package workout ties one exercise, one input source and one rep detector
// together into a session, and records finished sessions against the day.
package workout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/abhisek/streaks/internal/detector"
	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/motion"
	"github.com/abhisek/streaks/internal/pose"
	"github.com/google/uuid"
)

// Mode is how reps reach a session.
type Mode string

const (
	ModePose   Mode = "pose"   // camera landmarks
	ModeMotion Mode = "motion" // accelerometer samples
	ModeManual Mode = "manual" // typed counts only
)

// Session is one workout for one exercise. It owns exactly one detector.
// A feed goroutine may step it while the UI applies corrections.
type Session struct {
	ID         string
	Kind       exercise.Kind
	Mode       Mode
	PushupMode detector.PushupMode // set for pose push-up sessions
	StartedAt  time.Time

	mu       sync.Mutex
	counter  detector.Counter
	motion   *motion.Detector
	adjust   int
	tracking float64
	last     detector.Result
}

func newSession(kind exercise.Kind, mode Mode) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Kind:      kind,
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// NewPoseSession creates a camera session. pushupMode is ignored for squats.
func NewPoseSession(kind exercise.Kind, pushupMode detector.PushupMode) (*Session, error) {
	s := newSession(kind, ModePose)
	switch kind {
	case exercise.Pushup:
		if _, err := detector.ParsePushupMode(string(pushupMode)); err != nil {
			return nil, err
		}
		s.PushupMode = pushupMode
		s.counter = detector.NewPushup(pushupMode)
	case exercise.Squat:
		s.counter = detector.NewSquat()
	default:
		return nil, fmt.Errorf("%w: %q", exercise.ErrUnknownExercise, kind)
	}
	return s, nil
}

// NewMotionSession creates an accelerometer session with its detector active.
func NewMotionSession(kind exercise.Kind) (*Session, error) {
	if _, err := exercise.Parse(string(kind)); err != nil {
		return nil, err
	}
	s := newSession(kind, ModeMotion)
	s.motion = motion.NewDetector(kind)
	s.motion.Start()
	return s, nil
}

// NewManualSession creates a session that only counts Adjust calls.
func NewManualSession(kind exercise.Kind) (*Session, error) {
	if _, err := exercise.Parse(string(kind)); err != nil {
		return nil, err
	}
	return newSession(kind, ModeManual), nil
}

// OnPose feeds one pose frame. Sessions without a pose detector return the
// current count unchanged.
func (s *Session) OnPose(p pose.Pose) detector.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counter == nil {
		return detector.Result{Reps: s.reps()}
	}
	res := s.counter.Step(p)
	s.tracking = pose.Smooth(res.Confidence, s.tracking, pose.DefaultSmoothing)
	s.last = res
	res.Reps = s.reps()
	return res
}

// OnSample feeds one accelerometer sample and reports whether it completed a rep.
func (s *Session) OnSample(sample motion.Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.motion == nil {
		return false
	}
	return s.motion.Step(sample.Z, sample.AtMs)
}

// Adjust corrects the count by delta. The total never drops below zero.
func (s *Session) Adjust(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjust += delta
	if floor := -s.detected(); s.adjust < floor {
		s.adjust = floor
	}
	return s.reps()
}

// Reps returns detected reps plus manual corrections.
func (s *Session) Reps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reps()
}

func (s *Session) reps() int {
	return s.detected() + s.adjust
}

func (s *Session) detected() int {
	switch {
	case s.counter != nil:
		return s.counter.Reps()
	case s.motion != nil:
		return s.motion.Reps()
	default:
		return 0
	}
}

// Tracking returns the smoothed landmark confidence for pose sessions.
func (s *Session) Tracking() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracking
}

// Last returns the most recent pose step result.
func (s *Session) Last() detector.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// RunPose feeds frames from src until it is exhausted or ctx is done.
// onStep, if non-nil, receives every step result; RepOccurred marks reps.
func (s *Session) RunPose(ctx context.Context, src pose.Source, onStep func(detector.Result)) error {
	for {
		p, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		res := s.OnPose(p)
		if onStep != nil {
			onStep(res)
		}
	}
}

// RunMotion feeds samples until the channel closes or ctx is done.
// onStep, if non-nil, receives every sample and whether it completed a rep.
func (s *Session) RunMotion(ctx context.Context, samples <-chan motion.Sample, onStep func(motion.Sample, bool)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sample, ok := <-samples:
			if !ok {
				return nil
			}
			rep := s.OnSample(sample)
			if onStep != nil {
				onStep(sample, rep)
			}
		}
	}
}
