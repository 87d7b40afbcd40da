// Package report renders a stats.Summary for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/stats"
	"github.com/abhisek/streaks/internal/ui/components"
	"github.com/abhisek/streaks/internal/ui/theme"
)

// DefaultWidth is used when the caller does not know the terminal width.
const DefaultWidth = 60

// Input is everything the report shows.
type Input struct {
	Summary stats.Summary
	// Today is the record for the as-of day, if any.
	Today stats.DayRecord
	Goals exercise.Goals
	Width int
}

// Render returns the full report.
func Render(in Input) string {
	width := in.Width
	if width <= 0 {
		width = DefaultWidth
	}
	s := in.Summary

	sections := []string{
		theme.Title.Render("🔥 Streaks") + theme.Subtitle.Render("  as of "+s.AsOf),
		renderStreak(s),
		renderToday(in.Today, in.Goals, width),
		renderWindow(s, width),
		renderWeekdays(s.Weekdays, s.WeeksConsidered, width),
		renderHeatmap(s),
	}
	return theme.Card.Render(strings.Join(sections, "\n\n"))
}

func row(label, value string) string {
	return theme.Label.Render(label) + value
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func renderStreak(s stats.Summary) string {
	current := theme.Body.Render(plural(s.CurrentStreak, "day"))
	if s.CurrentStreak > 0 && stats.IsStreakMilestone(s.CurrentStreak) {
		current += theme.Met.Render("  milestone!")
	}
	lines := []string{
		row("Current", current),
		row("Longest", theme.Body.Render(plural(s.LongestStreak, "day"))),
		row("Next goal", theme.Subtitle.Render(fmt.Sprintf("%d-day streak", s.NextMilestone))),
		row("Last "+fmt.Sprint(len(s.Recent)), components.StreakDots(s.Recent)),
	}
	return strings.Join(lines, "\n")
}

func renderToday(today stats.DayRecord, goals exercise.Goals, width int) string {
	var lines []string
	for _, k := range exercise.All() {
		goal, ok := goals[k]
		if !ok {
			continue
		}
		done := today.Totals.Get(k)
		bar := components.NewProgressBar(k.DisplayName(), goals.Progress(k, done), false, width-12)
		lines = append(lines, bar.View()+theme.Subtitle.Render(fmt.Sprintf("  %d/%d", done, goal)))
	}
	if len(lines) == 0 {
		return theme.Hint.Render("No daily goals set.")
	}
	status := theme.Warning.Render("Goal not met yet")
	if today.MetGoal {
		status = theme.Met.Render("Goal met ✓")
	}
	return strings.Join(append([]string{status}, lines...), "\n")
}

func renderWindow(s stats.Summary, width int) string {
	a := s.Adherence
	pct := 0.0
	if a.TotalDays > 0 {
		pct = float64(a.Percent) / 100
	}
	bar := components.NewProgressBar("Adherence", pct, true, width)
	bar.Fill = lipgloss.NewStyle().Background(theme.Success)

	lines := []string{
		bar.View(),
		theme.Subtitle.Render(fmt.Sprintf("%d of %d days met", a.DaysMet, a.TotalDays)),
		row("Reps", theme.Body.Render(fmt.Sprintf("%s %d · %s %d · total %d",
			exercise.Pushup.DisplayName(), s.Totals.Pushup,
			exercise.Squat.DisplayName(), s.Totals.Squat,
			s.Totals.Reps))),
	}
	return strings.Join(lines, "\n")
}

func renderWeekdays(counts [7]int, weeks, width int) string {
	barWidth := width - 12 - 4
	if barWidth < 4 {
		barWidth = 4
	}
	lines := []string{theme.Subtitle.Render(fmt.Sprintf("Goal days by weekday, last %s", plural(weeks, "week")))}
	for d := time.Sunday; d <= time.Saturday; d++ {
		frac := 0.0
		if weeks > 0 {
			frac = float64(counts[d]) / float64(weeks)
		}
		n := int(frac*float64(barWidth) + 0.5)
		if n > barWidth {
			n = barWidth
		}
		bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", n))
		lines = append(lines, row(d.String()[:3], bar+theme.Subtitle.Render(fmt.Sprintf(" %d", counts[d]))))
	}
	return strings.Join(lines, "\n")
}

func renderHeatmap(s stats.Summary) string {
	return strings.Join([]string{
		theme.Subtitle.Render(fmt.Sprintf("Reps per day, last %s", plural(len(s.Heatmap), "day"))),
		components.HeatStrip(s.Heatmap, 15),
		components.HeatLegend(s.HeatThresholds),
	}, "\n")
}
