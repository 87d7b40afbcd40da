package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: warm streak colors on a dark terminal
var (
	Primary   = lipgloss.Color("#F97316") // Orange (flame)
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Heat levels, indexed by heatmap bucket 0..3.
var Heat = [4]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#334155")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FDBA74")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C2410C")),
}

// HeatStyle returns the style for bucket b, clamped to the known levels.
func HeatStyle(b int) lipgloss.Style {
	if b < 0 {
		b = 0
	}
	if b >= len(Heat) {
		b = len(Heat) - 1
	}
	return Heat[b]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(12)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Met = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Missed = lipgloss.NewStyle().
		Foreground(Border)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
