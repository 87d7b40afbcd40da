package pose

import "math"

// Name identifies a landmark in the fixed body vocabulary.
type Name string

const (
	Nose          Name = "nose"
	LeftEye       Name = "left_eye"
	RightEye      Name = "right_eye"
	LeftShoulder  Name = "left_shoulder"
	RightShoulder Name = "right_shoulder"
	LeftElbow     Name = "left_elbow"
	RightElbow    Name = "right_elbow"
	LeftWrist     Name = "left_wrist"
	RightWrist    Name = "right_wrist"
	LeftHip       Name = "left_hip"
	RightHip      Name = "right_hip"
	LeftKnee      Name = "left_knee"
	RightKnee     Name = "right_knee"
	LeftAnkle     Name = "left_ankle"
	RightAnkle    Name = "right_ankle"
)

// AllNames returns the landmark vocabulary in canonical order.
func AllNames() []Name {
	return []Name{
		Nose, LeftEye, RightEye,
		LeftShoulder, RightShoulder,
		LeftElbow, RightElbow,
		LeftWrist, RightWrist,
		LeftHip, RightHip,
		LeftKnee, RightKnee,
		LeftAnkle, RightAnkle,
	}
}

const (
	// DefaultMinScore is the landmark confidence every detector step requires.
	DefaultMinScore = 0.5

	// DefaultSmoothing is the default EMA weight for Smooth.
	DefaultSmoothing = 0.2
)

// Landmark is a single anatomical point. X and Y are normalized to the frame.
type Landmark struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Z     *float64 `json:"z,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

// Confidence returns the landmark score, or 1 when no score was supplied.
func (l Landmark) Confidence() float64 {
	if l.Score == nil {
		return 1
	}
	return *l.Score
}

// Pose maps landmark names to landmarks for one frame. Any name may be absent.
type Pose map[Name]Landmark

// Gate resolves names and reports whether all of them are present with
// confidence of at least minScore. A missing name fails the gate.
func (p Pose) Gate(minScore float64, names ...Name) ([]Landmark, bool) {
	lms := make([]Landmark, 0, len(names))
	for _, n := range names {
		lm, ok := p[n]
		if !ok {
			return nil, false
		}
		lms = append(lms, lm)
	}
	if !ConfidenceOK(minScore, lms...) {
		return nil, false
	}
	return lms, true
}

// ConfidenceOK reports whether every supplied landmark scores at least minScore.
func ConfidenceOK(minScore float64, lms ...Landmark) bool {
	for _, l := range lms {
		if l.Confidence() < minScore {
			return false
		}
	}
	return true
}

// Angle returns the angle at vertex b formed by rays b->a and b->c, in
// degrees. Only x and y are used. A zero-length ray yields 180.
func Angle(a, b, c Landmark) float64 {
	abx, aby := a.X-b.X, a.Y-b.Y
	cbx, cby := c.X-b.X, c.Y-b.Y

	mag1 := math.Hypot(abx, aby)
	mag2 := math.Hypot(cbx, cby)
	if mag1 == 0 || mag2 == 0 {
		return 180
	}

	cos := Clamp((abx*cbx+aby*cby)/(mag1*mag2), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

// Distance returns the 2D Euclidean distance between two landmarks.
func Distance(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Smooth is an exponential moving average step.
func Smooth(value, prev, alpha float64) float64 {
	return prev + alpha*(value-prev)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
