package cmd

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/streaks/internal/ui/screens/live"
	"github.com/abhisek/streaks/internal/workout"
)

// feedFunc steps a session from its input and forwards each step to send.
// It must return once ctx is done.
type feedFunc func(ctx context.Context, send func(tea.Msg)) error

// runLive shows the live counter while feed runs. Quitting the screen stops
// the feed; the session keeps whatever was counted and corrected so far.
func runLive(ctx context.Context, sess *workout.Session, source string, feed feedFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(live.New(sess, source))
	feedErr := make(chan error, 1)
	go func() {
		err := feed(ctx, p.Send)
		p.Send(live.DoneMsg{Err: err})
		feedErr <- err
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	cancel()
	if err := <-feedErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func plainFlag(cmd *cobra.Command) bool {
	plain, _ := cmd.Flags().GetBool("plain")
	return plain
}
