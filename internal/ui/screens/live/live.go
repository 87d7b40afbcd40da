// Package live is the full-screen rep counter shown while a session runs.
package live

import (
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/streaks/internal/detector"
	"github.com/abhisek/streaks/internal/motion"
	"github.com/abhisek/streaks/internal/ui/theme"
	"github.com/abhisek/streaks/internal/workout"
)

const maxBarWidth = 40

// Model renders a running workout.Session. The session is stepped by a feed
// goroutine; the model only reads it and applies manual corrections.
type Model struct {
	sess   *workout.Session
	source string
	bar    progress.Model

	reps     int
	last     detector.Result
	tracking float64
	sample   motion.Sample
	flash    bool // last step completed a rep

	done bool
	err  error
}

// New creates a screen for sess. source names the input (file or topic).
func New(sess *workout.Session, source string) *Model {
	return &Model{
		sess:   sess,
		source: source,
		bar: progress.New(
			progress.WithWidth(maxBarWidth),
			progress.WithoutPercentage(),
			progress.WithColors(theme.Primary),
		),
		reps: sess.Reps(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Err returns the feed error, if the feed failed.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > maxBarWidth {
			w = maxBarWidth
		}
		if w < 10 {
			w = 10
		}
		m.bar.SetWidth(w)
		return m, nil

	case StepMsg:
		m.last = m.sess.Last()
		m.tracking = m.sess.Tracking()
		m.reps = m.sess.Reps()
		m.flash = msg.Rep
		return m, nil

	case SampleMsg:
		m.sample = msg.Sample
		m.reps = m.sess.Reps()
		m.flash = msg.Rep
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.reps = m.sess.Reps()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "+", "=", "up", "k":
		m.reps = m.sess.Adjust(1)
	case "-", "down", "j":
		m.reps = m.sess.Adjust(-1)
	}
	m.flash = false
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}
