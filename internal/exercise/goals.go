package exercise

const (
	DefaultPushupGoal = 20
	DefaultSquatGoal  = 30
)

// Goals holds the daily rep target per exercise.
type Goals map[Kind]int

// DefaultGoals returns the built-in daily targets.
func DefaultGoals() Goals {
	return Goals{
		Pushup: DefaultPushupGoal,
		Squat:  DefaultSquatGoal,
	}
}

// Met reports whether every goal is reached by the given per-exercise totals.
// An empty goal set is never met, unlike a vacuous all-of check, so a
// configuration with every goal disabled cannot build a streak.
func (g Goals) Met(totals map[Kind]int) bool {
	if len(g) == 0 {
		return false
	}
	for k, goal := range g {
		if totals[k] < goal {
			return false
		}
	}
	return true
}

// Progress returns done/goal clamped to [0, 1] for one exercise.
func (g Goals) Progress(k Kind, done int) float64 {
	goal := g[k]
	if goal < 1 {
		goal = 1
	}
	p := float64(done) / float64(goal)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
