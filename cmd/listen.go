package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/streaks/internal/config"
	"github.com/abhisek/streaks/internal/motion"
	"github.com/abhisek/streaks/internal/ui/screens/live"
	"github.com/abhisek/streaks/internal/workout"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Count reps live from accelerometer samples published over MQTT",
	Long: "Subscribes to an MQTT topic carrying JSON samples ({\"z\": -0.4, \"t_ms\": 1200}) " +
		"and counts reps until interrupted. The session is recorded on exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := exerciseFlag(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.LoadFlags(cmd.Flags())
		if err != nil {
			return err
		}
		mq := motion.MQTTConfig{
			Broker:   cfg.MQTTBroker,
			Topic:    cfg.MQTTTopic,
			ClientID: cfg.MQTTClientID,
		}
		if b, _ := cmd.Flags().GetString("broker"); b != "" {
			mq.Broker = b
		}
		if t, _ := cmd.Flags().GetString("topic"); t != "" {
			mq.Topic = t
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		samples, err := motion.Subscribe(ctx, mq)
		if err != nil {
			return err
		}

		sess, err := workout.NewMotionSession(kind)
		if err != nil {
			return err
		}
		if plainFlag(cmd) {
			fmt.Printf("Counting %s from %s. Press Ctrl+C to finish.\n", sess.Kind.DisplayName(), mq.Topic)
			err = sess.RunMotion(ctx, samples, func(_ motion.Sample, rep bool) {
				if rep {
					fmt.Printf("rep %d\n", sess.Reps())
				}
			})
		} else {
			err = runLive(ctx, sess, mq.Topic, func(ctx context.Context, send func(tea.Msg)) error {
				return sess.RunMotion(ctx, samples, func(s motion.Sample, rep bool) {
					send(live.SampleMsg{Sample: s, Rep: rep})
				})
			})
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		stop()

		fmt.Printf("\n%d %s\n", sess.Reps(), sess.Kind.DisplayName())
		return recordSession(cmd, sess)
	},
}

func init() {
	listenCmd.Flags().StringP("exercise", "e", "pushup", "Exercise to count (pushup, squat)")
	listenCmd.Flags().String("broker", "", "MQTT broker URL (overrides STREAKS_MQTT_BROKER)")
	listenCmd.Flags().String("topic", "", "MQTT topic (overrides STREAKS_MQTT_TOPIC)")
	listenCmd.Flags().Bool("plain", false, "Print reps as lines instead of the live screen")
}
