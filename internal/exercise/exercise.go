package exercise

import (
	"errors"
	"fmt"
)

// ErrUnknownExercise is returned by Parse for names outside the catalog.
var ErrUnknownExercise = errors.New("unknown exercise")

// Kind identifies a tracked exercise.
type Kind string

const (
	Pushup Kind = "pushup"
	Squat  Kind = "squat"
)

// All returns all exercise kinds in display order.
func All() []Kind {
	return []Kind{Pushup, Squat}
}

// Parse resolves an exercise name.
func Parse(s string) (Kind, error) {
	switch s {
	case "pushup", "push-up", "pushups":
		return Pushup, nil
	case "squat", "squats":
		return Squat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExercise, s)
	}
}

// DisplayName returns a human-readable label for the exercise.
func (k Kind) DisplayName() string {
	switch k {
	case Pushup:
		return "Push-Ups"
	case Squat:
		return "Squats"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the exercise.
func (k Kind) Icon() string {
	switch k {
	case Pushup:
		return "💪"
	case Squat:
		return "🦵"
	default:
		return "✦"
	}
}
