// Package detector counts repetitions from camera-derived poses.
//
// Each detector is an explicit state struct plus a pure Step transition
// (state, pose) -> (state, result). The Pushup and Squat types hold a state
// for callers that prefer a mutable counter. Neither is safe for concurrent
// use; one instance belongs to one workout session.
package detector

import "github.com/abhisek/streaks/internal/pose"

// Phase is the position in a rep's hysteresis cycle.
type Phase string

const (
	PhaseUp   Phase = "up"
	PhaseDown Phase = "down"
)

// Result is the outcome of one Step.
type Result struct {
	// Reps is the total reps counted so far.
	Reps int `json:"reps"`
	// RepOccurred is true only on the step that completed a rep.
	RepOccurred bool `json:"rep_occurred"`
	// Confidence is 0 when the pose failed the landmark gate.
	Confidence float64 `json:"confidence"`
	// Progress estimates position in the range of motion, 0 (top) to 1 (bottom).
	Progress float64 `json:"progress"`
	// Signal is the raw measurement the decision was based on
	// (angle in degrees, nose offset, or inter-eye distance).
	Signal float64 `json:"signal"`
}

// Counter is a stateful pose rep counter.
type Counter interface {
	Step(p pose.Pose) Result
	Reps() int
}

// rejected is the result of a step that failed the confidence gate.
func rejected(reps int) Result {
	return Result{Reps: reps}
}
