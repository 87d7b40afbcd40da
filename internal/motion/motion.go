// Package motion counts repetitions from a single-axis accelerometer stream
// using a two-threshold state machine with a post-rep debounce.
package motion

import (
	"time"

	"github.com/abhisek/streaks/internal/exercise"
)

// DebounceWindow is the quiet period after a confirmed rep during which
// samples are ignored entirely.
const DebounceWindow = 500 * time.Millisecond

// DebounceMs is DebounceWindow in sample-clock milliseconds.
const DebounceMs = int64(DebounceWindow / time.Millisecond)

// Phase is the accelerometer detector's position in a rep.
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhaseDown    Phase = "down"
)

// Thresholds are the z-axis crossings (in g) for one exercise.
type Thresholds struct {
	Down float64 `json:"down"`
	Up   float64 `json:"up"`
}

var (
	PushupThresholds = Thresholds{Down: -0.2, Up: 0.2}
	SquatThresholds  = Thresholds{Down: -0.3, Up: 0.3}
)

// ThresholdsFor returns the thresholds for k. Unknown kinds get the push-up set.
func ThresholdsFor(k exercise.Kind) Thresholds {
	if k == exercise.Squat {
		return SquatThresholds
	}
	return PushupThresholds
}

// Sample is one accelerometer reading. AtMs is a monotonic clock in milliseconds.
type Sample struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	AtMs int64   `json:"t_ms"`
}

// State is the complete, serializable detector state.
type State struct {
	Phase Phase `json:"phase"`
	Reps  int   `json:"reps"`
	// LastRepMs is the sample time of the last confirmed rep; meaningful only when Reps > 0.
	LastRepMs int64 `json:"last_rep_ms"`
}

// NewState returns the initial state.
func NewState() State {
	return State{Phase: PhaseWaiting}
}

// Debouncing reports whether a sample at nowMs falls inside the debounce window.
func (s State) Debouncing(nowMs int64) bool {
	return s.Reps > 0 && nowMs-s.LastRepMs < DebounceMs
}

// Step applies one z-axis sample and reports whether it completed a rep.
func (s State) Step(th Thresholds, z float64, nowMs int64) (State, bool) {
	if s.Debouncing(nowMs) {
		return s, false
	}
	switch {
	case s.Phase == PhaseWaiting && z < th.Down:
		s.Phase = PhaseDown
	case s.Phase == PhaseDown && z > th.Up:
		s.Phase = PhaseWaiting
		s.Reps++
		s.LastRepMs = nowMs
		return s, true
	}
	return s, false
}

// Detector is an accelerometer rep counter for one exercise with an
// idle/active toggle. It is not safe for concurrent use.
type Detector struct {
	kind       exercise.Kind
	thresholds Thresholds
	state      State
	active     bool
}

// NewDetector creates an idle detector for k.
func NewDetector(k exercise.Kind) *Detector {
	return &Detector{
		kind:       k,
		thresholds: ThresholdsFor(k),
		state:      NewState(),
	}
}

// Start enables sampling and re-arms the state machine.
func (d *Detector) Start() {
	d.active = true
	d.state.Phase = PhaseWaiting
}

// Stop disables sampling. Counted reps are kept.
func (d *Detector) Stop() {
	d.active = false
	d.state.Phase = PhaseWaiting
}

// Active reports whether the detector is sampling.
func (d *Detector) Active() bool { return d.active }

// Step feeds one z-axis sample. Inactive detectors ignore samples.
func (d *Detector) Step(z float64, nowMs int64) bool {
	if !d.active {
		return false
	}
	var rep bool
	d.state, rep = d.state.Step(d.thresholds, z, nowMs)
	return rep
}

// Reps returns the reps counted so far.
func (d *Detector) Reps() int { return d.state.Reps }

// Kind returns the exercise the detector counts.
func (d *Detector) Kind() exercise.Kind { return d.kind }

// State returns a copy of the detector state.
func (d *Detector) State() State { return d.state }
