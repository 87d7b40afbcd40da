// Package stats derives streaks, adherence and heatmap views from daily
// totals. All functions are pure: they never mutate their input, take an
// explicit as-of day, and return zero values for empty histories.
package stats

import "github.com/abhisek/streaks/internal/exercise"

// Totals holds the reps logged for one day.
type Totals struct {
	Pushup int `json:"pushup"`
	Squat  int `json:"squat"`
}

// Reps returns the combined reps.
func (t Totals) Reps() int { return t.Pushup + t.Squat }

// Get returns the total for one exercise.
func (t Totals) Get(k exercise.Kind) int {
	switch k {
	case exercise.Pushup:
		return t.Pushup
	case exercise.Squat:
		return t.Squat
	default:
		return 0
	}
}

// Add returns t with n reps of k added.
func (t Totals) Add(k exercise.Kind, n int) Totals {
	switch k {
	case exercise.Pushup:
		t.Pushup += n
	case exercise.Squat:
		t.Squat += n
	}
	return t
}

// ByKind returns the totals keyed by exercise.
func (t Totals) ByKind() map[exercise.Kind]int {
	return map[exercise.Kind]int{
		exercise.Pushup: t.Pushup,
		exercise.Squat:  t.Squat,
	}
}

// DayRecord is one persisted day. Date is a local-day key (YYYY-MM-DD).
// MetGoal is decided by whoever records the day and treated as opaque here.
type DayRecord struct {
	Date    string `json:"date"`
	MetGoal bool   `json:"met_goal"`
	Totals  Totals `json:"totals"`
}

// AdherenceResult summarizes how many days in a window met the goal.
type AdherenceResult struct {
	DaysMet   int `json:"days_met"`
	TotalDays int `json:"total_days"`
	Percent   int `json:"percent"`
}

// RepTotals sums reps over a window.
type RepTotals struct {
	Pushup int `json:"pushup"`
	Squat  int `json:"squat"`
	Reps   int `json:"reps"`
}

// Bucket is a heatmap intensity level, 0 (no reps) to 3.
type Bucket int

// DayBucket pairs a day key with its heatmap bucket.
type DayBucket struct {
	Date   string `json:"date"`
	Bucket Bucket `json:"bucket"`
}

// Thresholds are the non-zero rep quantiles used for bucketing.
// T3 is reported for display but does not split buckets.
type Thresholds struct {
	T1 int `json:"t1"`
	T2 int `json:"t2"`
	T3 int `json:"t3"`
}
