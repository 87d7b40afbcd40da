package components

import (
	"strconv"
	"strings"

	"github.com/abhisek/streaks/internal/stats"
	"github.com/abhisek/streaks/internal/ui/theme"
)

const (
	heatCell = "■"
	dotMet   = "●"
	dotMiss  = "○"
)

// HeatStrip renders one cell per day, oldest first, wrapping every perRow
// cells. perRow <= 0 renders a single row.
func HeatStrip(days []stats.DayBucket, perRow int) string {
	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			if perRow > 0 && i%perRow == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(theme.HeatStyle(int(d.Bucket)).Render(heatCell))
	}
	return b.String()
}

// HeatLegend renders the four heat levels with their upper rep bounds.
func HeatLegend(th stats.Thresholds) string {
	parts := []string{
		theme.HeatStyle(0).Render(heatCell) + theme.Subtitle.Render(" 0"),
		theme.HeatStyle(1).Render(heatCell) + theme.Subtitle.Render(" ≤"+strconv.Itoa(th.T1)),
		theme.HeatStyle(2).Render(heatCell) + theme.Subtitle.Render(" ≤"+strconv.Itoa(th.T2)),
		theme.HeatStyle(3).Render(heatCell) + theme.Subtitle.Render(" >"+strconv.Itoa(th.T2)),
	}
	return strings.Join(parts, "  ")
}

// StreakDots renders met and missed days, oldest first.
func StreakDots(recent []bool) string {
	cells := make([]string, len(recent))
	for i, met := range recent {
		if met {
			cells[i] = theme.Met.Render(dotMet)
		} else {
			cells[i] = theme.Missed.Render(dotMiss)
		}
	}
	return strings.Join(cells, " ")
}
