package live

import "github.com/abhisek/streaks/internal/motion"

// StepMsg is sent after the session consumed one pose frame.
type StepMsg struct {
	Rep bool
}

// SampleMsg is sent after the session consumed one accelerometer sample.
type SampleMsg struct {
	Sample motion.Sample
	Rep    bool
}

// DoneMsg is sent when the input feed ends. Err is nil for a clean end.
type DoneMsg struct {
	Err error
}
