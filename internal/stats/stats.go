package stats

import (
	"math"
	"sort"

	"github.com/abhisek/streaks/internal/calendar"
)

// index maps day keys to records. A later record for the same key wins.
func index(records []DayRecord) map[string]DayRecord {
	m := make(map[string]DayRecord, len(records))
	for _, r := range records {
		m[r.Date] = r
	}
	return m
}

// Series returns the trailing windowDays days ending at asOf, oldest first.
// Days without a record are synthesized as not met with zero totals.
func Series(records []DayRecord, windowDays int, asOf calendar.Day) []DayRecord {
	return fill(index(records), windowDays, asOf)
}

func fill(m map[string]DayRecord, windowDays int, asOf calendar.Day) []DayRecord {
	if windowDays <= 0 {
		return []DayRecord{}
	}
	series := make([]DayRecord, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := asOf.AddDays(-i).String()
		rec, ok := m[key]
		if !ok {
			rec = DayRecord{Date: key}
		}
		series = append(series, rec)
	}
	return series
}

// CurrentStreak counts consecutive met days walking back from asOf. A missing
// or unmet asOf ends the streak at 0; there is no grace day.
func CurrentStreak(records []DayRecord, asOf calendar.Day) int {
	m := index(records)
	streak := 0
	for day := asOf; ; day = day.AddDays(-1) {
		rec, ok := m[day.String()]
		if !ok || !rec.MetGoal {
			return streak
		}
		streak++
	}
}

// LongestStreak returns the longest run of met days between the earliest
// record and asOf inclusive. Records with unparseable dates are ignored.
func LongestStreak(records []DayRecord, asOf calendar.Day) int {
	var earliest calendar.Day
	found := false
	for _, r := range records {
		d, err := calendar.ParseDay(r.Date)
		if err != nil {
			continue
		}
		if !found || d.Before(earliest) {
			earliest, found = d, true
		}
	}
	if !found {
		return 0
	}

	best, cur := 0, 0
	for _, rec := range Series(records, asOf.DaysSince(earliest)+1, asOf) {
		if !rec.MetGoal {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

// Adherence reports the share of the trailing window that met the goal.
func Adherence(records []DayRecord, windowDays int, asOf calendar.Day) AdherenceResult {
	if windowDays <= 0 {
		return AdherenceResult{}
	}
	met := 0
	for _, rec := range Series(records, windowDays, asOf) {
		if rec.MetGoal {
			met++
		}
	}
	return AdherenceResult{
		DaysMet:   met,
		TotalDays: windowDays,
		Percent:   int(math.Round(float64(met) / float64(windowDays) * 100)),
	}
}

// TotalsOver sums reps per exercise over the trailing window.
func TotalsOver(records []DayRecord, windowDays int, asOf calendar.Day) RepTotals {
	var out RepTotals
	for _, rec := range Series(records, windowDays, asOf) {
		out.Pushup += rec.Totals.Pushup
		out.Squat += rec.Totals.Squat
	}
	out.Reps = out.Pushup + out.Squat
	return out
}

// WeekdayConsistency counts met days per weekday (0 = Sunday) over the
// trailing weeks*7 days.
func WeekdayConsistency(records []DayRecord, weeks int, asOf calendar.Day) [7]int {
	var counts [7]int
	if weeks <= 0 {
		return counts
	}
	for _, rec := range Series(records, weeks*7, asOf) {
		if !rec.MetGoal {
			continue
		}
		d, err := calendar.ParseDay(rec.Date)
		if err != nil {
			continue
		}
		counts[d.Weekday()]++
	}
	return counts
}

// RecentDays returns whether each of the last n days met the goal, oldest first.
func RecentDays(records []DayRecord, n int, asOf calendar.Day) []bool {
	series := Series(records, n, asOf)
	out := make([]bool, len(series))
	for i, rec := range series {
		out[i] = rec.MetGoal
	}
	return out
}

// RepThresholds picks the 33rd, 66th and 90th percentile of sorted non-zero
// rep counts using the floor((n-1)*p) index.
func RepThresholds(sortedNonZero []int) Thresholds {
	if len(sortedNonZero) == 0 {
		return Thresholds{}
	}
	q := func(p float64) int {
		return sortedNonZero[int(math.Floor(float64(len(sortedNonZero)-1)*p))]
	}
	return Thresholds{T1: q(0.33), T2: q(0.66), T3: q(0.9)}
}

// BucketOf assigns a rep count to a heatmap bucket.
func BucketOf(reps int, th Thresholds) Bucket {
	switch {
	case reps <= 0:
		return 0
	case reps <= th.T1:
		return 1
	case reps <= th.T2:
		return 2
	default:
		return 3
	}
}

// BucketizeReps assigns every day of the trailing window a heatmap bucket
// relative to the window's own non-zero rep distribution.
func BucketizeReps(records []DayRecord, windowDays int, asOf calendar.Day) []DayBucket {
	buckets, _ := bucketize(records, windowDays, asOf)
	return buckets
}

func bucketize(records []DayRecord, windowDays int, asOf calendar.Day) ([]DayBucket, Thresholds) {
	series := Series(records, windowDays, asOf)

	var nonZero []int
	for _, rec := range series {
		if r := rec.Totals.Reps(); r > 0 {
			nonZero = append(nonZero, r)
		}
	}
	sort.Ints(nonZero)
	th := RepThresholds(nonZero)

	out := make([]DayBucket, len(series))
	for i, rec := range series {
		b := Bucket(0)
		if len(nonZero) > 0 {
			b = BucketOf(rec.Totals.Reps(), th)
		}
		out[i] = DayBucket{Date: rec.Date, Bucket: b}
	}
	return out, th
}
