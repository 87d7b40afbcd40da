package stats

// streakMilestones are the early streak targets; beyond the last one a
// milestone falls every 5 days.
var streakMilestones = []int{5, 10, 15, 20}

// NextStreakMilestone returns the next streak milestone above current.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	return ((current / 5) + 1) * 5
}

// IsStreakMilestone reports whether a streak of exactly n days is a milestone.
func IsStreakMilestone(n int) bool {
	return n > 0 && n%5 == 0
}
