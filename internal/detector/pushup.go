package detector

import (
	"fmt"
	"math"

	"github.com/abhisek/streaks/internal/pose"
)

// PushupMode is the camera placement a push-up detector is built for.
// It is fixed for the lifetime of the detector.
type PushupMode string

const (
	// ModeGround: phone on the floor under the face, looking up.
	ModeGround PushupMode = "ground"
	// ModeSide: camera views the body from the side.
	ModeSide PushupMode = "side"
	// ModeFront: camera faces the user.
	ModeFront PushupMode = "front"
)

// AllPushupModes returns the supported modes in display order.
func AllPushupModes() []PushupMode {
	return []PushupMode{ModeGround, ModeSide, ModeFront}
}

// ParsePushupMode parses a mode name.
func ParsePushupMode(s string) (PushupMode, error) {
	for _, m := range AllPushupModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown push-up mode %q (want ground, side or front)", s)
}

// Ground mode: inter-eye distance mapped onto its observed range.
const (
	GroundDownProgress = 0.7
	GroundUpProgress   = 0.3
	GroundConfidence   = 0.7

	minProximitySpan = 1e-4
)

// Side mode: elbow angle (shoulder-elbow-wrist), degrees.
const (
	SideDownAngle  = 70.0
	SideUpAngle    = 150.0
	SideConfidence = 0.7
)

// Front mode: nose offset below the shoulder midpoint, normalized units.
const (
	FrontDownDelta  = 0.06
	FrontUpDelta    = 0.02
	FrontConfidence = 0.6
)

// PushupState is the complete, serializable state of a push-up detector.
type PushupState struct {
	Mode  PushupMode `json:"mode"`
	Phase Phase      `json:"phase"`
	Reps  int        `json:"reps"`

	// Ground mode only: observed inter-eye distance range since creation.
	MinProximity float64 `json:"min_proximity"`
	MaxProximity float64 `json:"max_proximity"`
	RangeSeen    bool    `json:"range_seen"`
}

// NewPushupState returns the initial state for mode.
func NewPushupState(mode PushupMode) PushupState {
	return PushupState{Mode: mode, Phase: PhaseUp}
}

// Step applies one pose to s and returns the next state and the step result.
// A pose that fails the landmark gate returns s unchanged with confidence 0.
func (s PushupState) Step(p pose.Pose) (PushupState, Result) {
	switch s.Mode {
	case ModeGround:
		return s.stepGround(p)
	case ModeSide:
		return s.stepSide(p)
	case ModeFront:
		return s.stepFront(p)
	default:
		return s, rejected(s.Reps)
	}
}

func (s PushupState) stepGround(p pose.Pose) (PushupState, Result) {
	lms, ok := p.Gate(pose.DefaultMinScore, pose.LeftEye, pose.RightEye, pose.Nose)
	if !ok {
		return s, rejected(s.Reps)
	}

	dist := pose.Distance(lms[0], lms[1])
	if !math.IsInf(dist, 0) && !math.IsNaN(dist) && dist > 0 {
		if !s.RangeSeen {
			s.MinProximity, s.MaxProximity, s.RangeSeen = dist, dist, true
		} else {
			s.MinProximity = math.Min(s.MinProximity, dist)
			s.MaxProximity = math.Max(s.MaxProximity, dist)
		}
	}

	var progress float64
	if s.RangeSeen {
		span := math.Max(minProximitySpan, s.MaxProximity-s.MinProximity)
		progress = pose.Clamp01((dist - s.MinProximity) / span)
	}

	res := Result{Confidence: GroundConfidence, Progress: progress, Signal: dist}
	switch {
	case s.Phase == PhaseUp && progress > GroundDownProgress:
		s.Phase = PhaseDown
	case s.Phase == PhaseDown && progress < GroundUpProgress:
		s.Phase = PhaseUp
		s.Reps++
		res.RepOccurred = true
	}
	res.Reps = s.Reps
	return s, res
}

func (s PushupState) stepSide(p pose.Pose) (PushupState, Result) {
	lms, ok := p.Gate(pose.DefaultMinScore, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist)
	if !ok {
		lms, ok = p.Gate(pose.DefaultMinScore, pose.RightShoulder, pose.RightElbow, pose.RightWrist)
	}
	if !ok {
		return s, rejected(s.Reps)
	}

	angle := pose.Angle(lms[0], lms[1], lms[2])
	res := Result{
		Confidence: SideConfidence,
		Progress:   pose.Clamp01((SideUpAngle - angle) / (SideUpAngle - SideDownAngle)),
		Signal:     angle,
	}
	switch {
	case s.Phase == PhaseUp && angle < SideDownAngle:
		s.Phase = PhaseDown
	case s.Phase == PhaseDown && angle > SideUpAngle:
		s.Phase = PhaseUp
		s.Reps++
		res.RepOccurred = true
	}
	res.Reps = s.Reps
	return s, res
}

func (s PushupState) stepFront(p pose.Pose) (PushupState, Result) {
	lms, ok := p.Gate(pose.DefaultMinScore, pose.LeftShoulder, pose.RightShoulder, pose.Nose)
	if !ok {
		return s, rejected(s.Reps)
	}

	shoulderMidY := (lms[0].Y + lms[1].Y) / 2
	delta := lms[2].Y - shoulderMidY
	res := Result{
		Confidence: FrontConfidence,
		Progress:   pose.Clamp01((delta - FrontUpDelta) / (FrontDownDelta - FrontUpDelta)),
		Signal:     delta,
	}
	switch {
	case s.Phase == PhaseUp && delta > FrontDownDelta:
		s.Phase = PhaseDown
	case s.Phase == PhaseDown && delta < FrontUpDelta:
		s.Phase = PhaseUp
		s.Reps++
		res.RepOccurred = true
	}
	res.Reps = s.Reps
	return s, res
}

// Pushup is a push-up counter holding a PushupState.
type Pushup struct {
	state PushupState
}

// NewPushup creates a push-up detector for a fixed camera placement.
func NewPushup(mode PushupMode) *Pushup {
	return &Pushup{state: NewPushupState(mode)}
}

// Step feeds one pose to the detector.
func (d *Pushup) Step(p pose.Pose) Result {
	var res Result
	d.state, res = d.state.Step(p)
	return res
}

// Reps returns the reps counted so far.
func (d *Pushup) Reps() int { return d.state.Reps }

// Mode returns the camera placement.
func (d *Pushup) Mode() PushupMode { return d.state.Mode }

// State returns a copy of the detector state.
func (d *Pushup) State() PushupState { return d.state }
