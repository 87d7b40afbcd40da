package stats

import "github.com/abhisek/streaks/internal/calendar"

// Options sizes the windows of a Summary. Zero fields take the defaults.
type Options struct {
	WindowDays int // adherence, totals and heatmap window; default 30
	Weeks      int // weekday consistency window; default 12
	RecentDays int // streak dots; default 7
}

const (
	DefaultWindowDays = 30
	DefaultWeeks      = 12
	DefaultRecentDays = 7
)

func (o Options) withDefaults() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.Weeks <= 0 {
		o.Weeks = DefaultWeeks
	}
	if o.RecentDays <= 0 {
		o.RecentDays = DefaultRecentDays
	}
	return o
}

// Summary bundles every statistics view for one as-of day.
type Summary struct {
	AsOf            string          `json:"as_of"`
	CurrentStreak   int             `json:"current_streak"`
	LongestStreak   int             `json:"longest_streak"`
	NextMilestone   int             `json:"next_milestone"`
	Adherence       AdherenceResult `json:"adherence"`
	Totals          RepTotals       `json:"totals"`
	Weekdays        [7]int          `json:"weekdays"`
	WeeksConsidered int             `json:"weeks_considered"`
	Heatmap         []DayBucket     `json:"heatmap"`
	HeatThresholds  Thresholds      `json:"heat_thresholds"`
	Recent          []bool          `json:"recent"`
}

// Summarize computes all views over records as of asOf.
func Summarize(records []DayRecord, asOf calendar.Day, opts Options) Summary {
	opts = opts.withDefaults()
	current := CurrentStreak(records, asOf)
	heatmap, th := bucketize(records, opts.WindowDays, asOf)

	return Summary{
		AsOf:            asOf.String(),
		CurrentStreak:   current,
		LongestStreak:   LongestStreak(records, asOf),
		NextMilestone:   NextStreakMilestone(current),
		Adherence:       Adherence(records, opts.WindowDays, asOf),
		Totals:          TotalsOver(records, opts.WindowDays, asOf),
		Weekdays:        WeekdayConsistency(records, opts.Weeks, asOf),
		WeeksConsidered: opts.Weeks,
		Heatmap:         heatmap,
		HeatThresholds:  th,
		Recent:          RecentDays(records, opts.RecentDays, asOf),
	}
}
