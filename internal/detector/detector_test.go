package detector

import (
	"math"
	"testing"

	"github.com/abhisek/streaks/internal/pose"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func conf(v float64) *float64 { return &v }

// joint returns three landmarks whose angle at the middle one is deg degrees.
func joint(deg float64) (pose.Landmark, pose.Landmark, pose.Landmark) {
	rad := deg * math.Pi / 180
	vertex := pose.Landmark{X: 0.5, Y: 0.5}
	top := pose.Landmark{X: 0.5, Y: 0.3}
	end := pose.Landmark{X: 0.5 + 0.2*math.Sin(rad), Y: 0.5 - 0.2*math.Cos(rad)}
	return top, vertex, end
}

func elbowPose(deg float64, side string) pose.Pose {
	s, e, w := joint(deg)
	if side == "right" {
		return pose.Pose{pose.RightShoulder: s, pose.RightElbow: e, pose.RightWrist: w}
	}
	return pose.Pose{pose.LeftShoulder: s, pose.LeftElbow: e, pose.LeftWrist: w}
}

func kneePose(deg float64) pose.Pose {
	h, k, a := joint(deg)
	return pose.Pose{pose.LeftHip: h, pose.LeftKnee: k, pose.LeftAnkle: a}
}

func frontPose(delta float64) pose.Pose {
	return pose.Pose{
		pose.LeftShoulder:  {X: 0.4, Y: 0.4},
		pose.RightShoulder: {X: 0.6, Y: 0.4},
		pose.Nose:          {X: 0.5, Y: 0.4 + delta},
	}
}

func groundPose(eyeDist float64) pose.Pose {
	return pose.Pose{
		pose.LeftEye:  {X: 0.5 - eyeDist/2, Y: 0.4},
		pose.RightEye: {X: 0.5 + eyeDist/2, Y: 0.4},
		pose.Nose:     {X: 0.5, Y: 0.5},
	}
}

func countReps(c Counter, poses []pose.Pose) int {
	n := 0
	for _, p := range poses {
		if c.Step(p).RepOccurred {
			n++
		}
	}
	return n
}

func TestJointHelper(t *testing.T) {
	for _, deg := range []float64{30, 70, 90, 150, 170} {
		a, b, c := joint(deg)
		if got := pose.Angle(a, b, c); !almostEqual(got, deg) {
			t.Errorf("joint(%v) angle = %f", deg, got)
		}
	}
}

func TestPushupSide_OneRep(t *testing.T) {
	d := NewPushup(ModeSide)
	seq := []pose.Pose{elbowPose(160, "left"), elbowPose(60, "left"), elbowPose(160, "left")}
	if got := countReps(d, seq); got != 1 {
		t.Errorf("reps occurred = %d, want 1", got)
	}
	if d.Reps() != 1 {
		t.Errorf("Reps() = %d, want 1", d.Reps())
	}
}

func TestPushupSide_FallsBackToRightArm(t *testing.T) {
	d := NewPushup(ModeSide)
	res := d.Step(elbowPose(60, "right"))
	if res.Confidence != SideConfidence {
		t.Fatalf("confidence = %f, want %f", res.Confidence, SideConfidence)
	}
	if d.State().Phase != PhaseDown {
		t.Errorf("phase = %s, want down", d.State().Phase)
	}
}

func TestPushupSide_PrefersLeftArm(t *testing.T) {
	p := elbowPose(160, "left")
	for k, v := range elbowPose(60, "right") {
		p[k] = v
	}
	d := NewPushup(ModeSide)
	res := d.Step(p)
	if !almostEqual(res.Signal, 160) {
		t.Errorf("signal = %f, want left elbow angle 160", res.Signal)
	}
}

func TestPushupSide_Progress(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{160, 0},
		{150, 0},
		{110, 0.5},
		{70, 1},
		{40, 1},
	}
	for _, tt := range tests {
		_, res := NewPushupState(ModeSide).Step(elbowPose(tt.angle, "left"))
		if !almostEqual(res.Progress, tt.want) {
			t.Errorf("progress at %v = %f, want %f", tt.angle, res.Progress, tt.want)
		}
	}
}

func TestPushupSide_HysteresisNoChatter(t *testing.T) {
	d := NewPushup(ModeSide)
	// Hovering between thresholds never completes a rep.
	seq := []pose.Pose{
		elbowPose(160, "left"), elbowPose(100, "left"), elbowPose(140, "left"),
		elbowPose(75, "left"), elbowPose(145, "left"),
	}
	if got := countReps(d, seq); got != 0 {
		t.Errorf("reps = %d, want 0", got)
	}
}

func TestPushupFront_Cycle(t *testing.T) {
	d := NewPushup(ModeFront)
	seq := []pose.Pose{frontPose(0.0), frontPose(0.08), frontPose(0.04), frontPose(0.01)}
	results := make([]Result, 0, len(seq))
	for _, p := range seq {
		results = append(results, d.Step(p))
	}
	if !results[3].RepOccurred || results[3].Reps != 1 {
		t.Errorf("last result = %+v, want rep 1", results[3])
	}
	if results[1].Confidence != FrontConfidence {
		t.Errorf("confidence = %f, want %f", results[1].Confidence, FrontConfidence)
	}
	if !almostEqual(results[2].Progress, 0.5) {
		t.Errorf("progress = %f, want 0.5", results[2].Progress)
	}
}

func TestPushupGround_DynamicRange(t *testing.T) {
	d := NewPushup(ModeGround)
	// Near face (large eye distance) is the bottom of the push-up.
	seq := []float64{0.10, 0.20, 0.10, 0.20, 0.10}
	reps := 0
	for _, dist := range seq {
		res := d.Step(groundPose(dist))
		if res.Confidence != GroundConfidence {
			t.Fatalf("confidence = %f, want %f", res.Confidence, GroundConfidence)
		}
		if res.RepOccurred {
			reps++
		}
	}
	if reps != 2 {
		t.Errorf("reps = %d, want 2", reps)
	}
	st := d.State()
	if !almostEqual(st.MinProximity, 0.10) || !almostEqual(st.MaxProximity, 0.20) {
		t.Errorf("range = [%f, %f], want [0.10, 0.20]", st.MinProximity, st.MaxProximity)
	}
}

func TestPushupGround_FirstFrameHasZeroProgress(t *testing.T) {
	_, res := NewPushupState(ModeGround).Step(groundPose(0.15))
	if res.Progress != 0 {
		t.Errorf("progress = %f, want 0", res.Progress)
	}
}

func TestPushupGround_NeedsNose(t *testing.T) {
	p := groundPose(0.1)
	delete(p, pose.Nose)
	st := NewPushupState(ModeGround)
	next, res := st.Step(p)
	if res.Confidence != 0 || next != st {
		t.Errorf("missing nose: res=%+v state changed=%v", res, next != st)
	}
}

func TestPushup_GateFailureLeavesStateUntouched(t *testing.T) {
	lowConf := func(p pose.Pose) pose.Pose {
		for k, v := range p {
			v.Score = conf(0.3)
			p[k] = v
		}
		return p
	}
	tests := []struct {
		mode PushupMode
		warm pose.Pose
		bad  pose.Pose
	}{
		{ModeGround, groundPose(0.1), lowConf(groundPose(0.5))},
		{ModeSide, elbowPose(60, "left"), lowConf(elbowPose(160, "left"))},
		{ModeFront, frontPose(0.1), lowConf(frontPose(0.0))},
	}
	for _, tt := range tests {
		d := NewPushup(tt.mode)
		d.Step(tt.warm)
		before := d.State()
		res := d.Step(tt.bad)
		if res.Confidence != 0 || res.RepOccurred || res.Progress != 0 {
			t.Errorf("%s: result = %+v, want zero", tt.mode, res)
		}
		if d.State() != before {
			t.Errorf("%s: state mutated by gated step", tt.mode)
		}
		if res.Reps != before.Reps {
			t.Errorf("%s: reps = %d, want %d", tt.mode, res.Reps, before.Reps)
		}
	}
}

func TestPushup_UnknownModeRejects(t *testing.T) {
	st := PushupState{Mode: "ceiling", Phase: PhaseUp}
	_, res := st.Step(elbowPose(40, "left"))
	if res.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", res.Confidence)
	}
}

func TestParsePushupMode(t *testing.T) {
	for _, m := range AllPushupModes() {
		got, err := ParsePushupMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParsePushupMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParsePushupMode("ceiling"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSquat_TwoReps(t *testing.T) {
	d := NewSquat()
	seq := []pose.Pose{kneePose(170), kneePose(70), kneePose(170), kneePose(70), kneePose(170)}
	if got := countReps(d, seq); got != 2 {
		t.Errorf("reps occurred = %d, want 2", got)
	}
	if d.Reps() != 2 {
		t.Errorf("Reps() = %d, want 2", d.Reps())
	}
}

func TestSquat_FallsBackPerLandmark(t *testing.T) {
	h, k, a := joint(70)
	p := pose.Pose{pose.LeftHip: h, pose.RightKnee: k, pose.RightAnkle: a}
	st, res := NewSquatState().Step(p)
	if res.Confidence != SquatConfidence || st.Phase != PhaseDown {
		t.Errorf("res=%+v phase=%s, want gated down", res, st.Phase)
	}
}

func TestSquat_LowConfidenceLeftDoesNotFallBack(t *testing.T) {
	h, k, a := joint(70)
	weak := k
	weak.Score = conf(0.1)
	p := pose.Pose{
		pose.LeftHip: h, pose.LeftKnee: weak, pose.LeftAnkle: a,
		pose.RightHip: h, pose.RightKnee: k, pose.RightAnkle: a,
	}
	st := NewSquatState()
	next, res := st.Step(p)
	if res.Confidence != 0 || next != st {
		t.Errorf("low-confidence left knee must fail the gate: res=%+v", res)
	}
}

func TestSquat_StrandedDownNeverCompletes(t *testing.T) {
	d := NewSquat()
	d.Step(kneePose(70))
	for i := 0; i < 100; i++ {
		d.Step(pose.Pose{})
	}
	if d.State().Phase != PhaseDown || d.Reps() != 0 {
		t.Errorf("state = %+v, want stranded in down with 0 reps", d.State())
	}
	if res := d.Step(kneePose(170)); !res.RepOccurred {
		t.Error("expected rep once tracking resumes")
	}
}

func TestRepsMonotonic(t *testing.T) {
	d := NewSquat()
	last := 0
	angles := []float64{170, 60, 165, 90, 50, 10, 170, 179, 75, 120, 161}
	for _, a := range angles {
		res := d.Step(kneePose(a))
		if res.Reps < last {
			t.Fatalf("reps decreased from %d to %d", last, res.Reps)
		}
		last = res.Reps
	}
	if last != 3 {
		t.Errorf("final reps = %d, want 3", last)
	}
}
