package live

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/streaks/internal/ui/theme"
	"github.com/abhisek/streaks/internal/workout"
)

// lowTracking is the smoothed confidence below which the camera hint shows.
const lowTracking = 0.5

func (m *Model) render() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(m.sess.Kind.Icon() + " " + m.sess.Kind.DisplayName()))
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(m.source))
	b.WriteString("\n\n")

	count := theme.Title.Render(fmt.Sprintf("%d", m.reps))
	if m.flash {
		count = theme.Met.Render(fmt.Sprintf("%d  +1", m.reps))
	}
	b.WriteString(theme.Label.Render("Reps") + count + "\n\n")

	switch m.sess.Mode {
	case workout.ModePose:
		b.WriteString(m.renderPose())
	case workout.ModeMotion:
		b.WriteString(m.renderMotion())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("+/- correct count · q finish"))

	return theme.Card.Render(b.String())
}

func (m *Model) renderPose() string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Depth") + m.bar.ViewAs(clamp01(m.last.Progress)) + "\n")

	pct := fmt.Sprintf("%d%%", int(m.tracking*100+0.5))
	tracking := theme.Met.Render(pct)
	if m.tracking < lowTracking {
		tracking = theme.Warning.Render(pct + "  move into frame")
	}
	b.WriteString(theme.Label.Render("Tracking") + tracking + "\n")
	b.WriteString(theme.Label.Render("Signal") + theme.Body.Render(fmt.Sprintf("%.2f", m.last.Signal)) + "\n")
	return b.String()
}

func (m *Model) renderMotion() string {
	return theme.Label.Render("Z") +
		theme.Body.Render(fmt.Sprintf("%+.2f g", m.sample.Z)) +
		theme.Subtitle.Render(fmt.Sprintf("  t=%dms", m.sample.AtMs)) + "\n"
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return theme.Warning.Render("Input failed: " + m.err.Error())
	case m.done:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Input finished. Press q to save.")
	default:
		return theme.Subtitle.Render("Counting…")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
