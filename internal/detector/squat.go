package detector

import "github.com/abhisek/streaks/internal/pose"

// Squat thresholds on the knee angle (hip-knee-ankle), degrees.
const (
	SquatDownAngle  = 80.0
	SquatUpAngle    = 160.0
	SquatConfidence = 0.7
)

// SquatState is the complete, serializable state of a squat detector.
type SquatState struct {
	Phase Phase `json:"phase"`
	Reps  int   `json:"reps"`
}

// NewSquatState returns the initial squat state.
func NewSquatState() SquatState {
	return SquatState{Phase: PhaseUp}
}

// Step applies one pose to s. Each joint resolves to the left landmark and
// falls back to the right one only when the left is absent from the pose.
func (s SquatState) Step(p pose.Pose) (SquatState, Result) {
	hip, okHip := sided(p, pose.LeftHip, pose.RightHip)
	knee, okKnee := sided(p, pose.LeftKnee, pose.RightKnee)
	ankle, okAnkle := sided(p, pose.LeftAnkle, pose.RightAnkle)
	if !okHip || !okKnee || !okAnkle || !pose.ConfidenceOK(pose.DefaultMinScore, hip, knee, ankle) {
		return s, rejected(s.Reps)
	}

	angle := pose.Angle(hip, knee, ankle)
	res := Result{
		Confidence: SquatConfidence,
		Progress:   pose.Clamp01((SquatUpAngle - angle) / (SquatUpAngle - SquatDownAngle)),
		Signal:     angle,
	}
	switch {
	case s.Phase == PhaseUp && angle < SquatDownAngle:
		s.Phase = PhaseDown
	case s.Phase == PhaseDown && angle > SquatUpAngle:
		s.Phase = PhaseUp
		s.Reps++
		res.RepOccurred = true
	}
	res.Reps = s.Reps
	return s, res
}

func sided(p pose.Pose, left, right pose.Name) (pose.Landmark, bool) {
	if lm, ok := p[left]; ok {
		return lm, true
	}
	lm, ok := p[right]
	return lm, ok
}

// Squat is a squat counter holding a SquatState.
type Squat struct {
	state SquatState
}

// NewSquat creates a squat detector.
func NewSquat() *Squat {
	return &Squat{state: NewSquatState()}
}

// Step feeds one pose to the detector.
func (d *Squat) Step(p pose.Pose) Result {
	var res Result
	d.state, res = d.state.Step(p)
	return res
}

// Reps returns the reps counted so far.
func (d *Squat) Reps() int { return d.state.Reps }

// State returns a copy of the detector state.
func (d *Squat) State() SquatState { return d.state }
