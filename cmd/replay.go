package cmd

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/streaks/internal/detector"
	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/motion"
	"github.com/abhisek/streaks/internal/pose"
	"github.com/abhisek/streaks/internal/ui/screens/live"
	"github.com/abhisek/streaks/internal/workout"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Count reps from recorded pose frames or accelerometer samples",
}

var replayPoseCmd = &cobra.Command{
	Use:   "pose <frames.jsonl>",
	Short: "Replay JSON-lines pose frames through a rep detector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := exerciseFlag(cmd)
		if err != nil {
			return err
		}
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := detector.ParsePushupMode(modeFlag)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open frames: %w", err)
		}
		defer f.Close()

		sess, err := workout.NewPoseSession(kind, mode)
		if err != nil {
			return err
		}
		src := pose.NewReaderSource(f)
		if plainFlag(cmd) {
			err = sess.RunPose(cmd.Context(), src, func(r detector.Result) {
				if r.RepOccurred {
					fmt.Printf("rep %d  (signal %.2f)\n", r.Reps, r.Signal)
				}
			})
		} else {
			err = runLive(cmd.Context(), sess, args[0], func(ctx context.Context, send func(tea.Msg)) error {
				return sess.RunPose(ctx, src, func(r detector.Result) {
					send(live.StepMsg{Rep: r.RepOccurred})
				})
			})
		}
		if err != nil {
			return err
		}
		return finishReplay(cmd, sess)
	},
}

var replayMotionCmd = &cobra.Command{
	Use:   "motion <samples.csv>",
	Short: "Replay accelerometer samples (t_ms,z or t_ms,x,y,z) through the motion detector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := exerciseFlag(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open samples: %w", err)
		}
		defer f.Close()

		samples, err := motion.ReadSamples(f)
		if err != nil {
			return err
		}

		sess, err := workout.NewMotionSession(kind)
		if err != nil {
			return err
		}
		ch := make(chan motion.Sample, len(samples))
		for _, s := range samples {
			ch <- s
		}
		close(ch)

		if plainFlag(cmd) {
			err = sess.RunMotion(cmd.Context(), ch, func(s motion.Sample, rep bool) {
				if rep {
					fmt.Printf("rep %d  (t=%dms)\n", sess.Reps(), s.AtMs)
				}
			})
		} else {
			err = runLive(cmd.Context(), sess, args[0], func(ctx context.Context, send func(tea.Msg)) error {
				return sess.RunMotion(ctx, ch, func(s motion.Sample, rep bool) {
					send(live.SampleMsg{Sample: s, Rep: rep})
				})
			})
		}
		if err != nil {
			return err
		}
		return finishReplay(cmd, sess)
	},
}

func init() {
	for _, c := range []*cobra.Command{replayPoseCmd, replayMotionCmd} {
		c.Flags().StringP("exercise", "e", string(exercise.Pushup), "Exercise to count (pushup, squat)")
		c.Flags().Bool("record", false, "Credit the counted reps to today")
		c.Flags().Bool("plain", false, "Print reps as lines instead of the live screen")
	}
	replayPoseCmd.Flags().StringP("mode", "m", string(detector.ModeSide), "Push-up camera placement (ground, side, front)")

	replayCmd.AddCommand(replayPoseCmd)
	replayCmd.AddCommand(replayMotionCmd)
}

func exerciseFlag(cmd *cobra.Command) (exercise.Kind, error) {
	name, _ := cmd.Flags().GetString("exercise")
	return exercise.Parse(name)
}

// finishReplay prints the total and, with --record, saves the session.
func finishReplay(cmd *cobra.Command, sess *workout.Session) error {
	fmt.Printf("%d %s\n", sess.Reps(), sess.Kind.DisplayName())

	record, _ := cmd.Flags().GetBool("record")
	if !record {
		return nil
	}
	return recordSession(cmd, sess)
}

// recordSession credits sess to the current local day and prints the day.
func recordSession(cmd *cobra.Command, sess *workout.Session) error {
	if sess.Reps() == 0 {
		fmt.Fprintln(os.Stderr, "warning: no reps counted, nothing recorded")
		return nil
	}

	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	rec, err := env.recorder().Record(cmd.Context(), sess)
	if err != nil {
		return err
	}
	printDay("Recorded", rec.Date, rec.Totals.Pushup, rec.Totals.Squat, rec.MetGoal)
	return nil
}

func printDay(verb, date string, pushups, squats int, met bool) {
	status := "goal not met"
	if met {
		status = "goal met ✓"
	}
	fmt.Printf("%s %s: %d push-ups, %d squats, %s\n", verb, date, pushups, squats, status)
}
