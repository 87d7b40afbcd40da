package cmd

import (
	"fmt"
	"strconv"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/abhisek/streaks/internal/exercise"
	"github.com/abhisek/streaks/internal/workout"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <exercise> <reps>",
	Short: "Add reps by hand (use -- before a negative count to correct a day)",
	Example: "  streaks log pushup 20\n" +
		"  streaks log squat 30 --date 2026-10-15\n" +
		"  streaks log squat -- -5",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := exercise.Parse(args[0])
		if err != nil {
			return err
		}
		reps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("reps must be a whole number: %q", args[1])
		}
		date, _ := cmd.Flags().GetString("date")
		if date != "" {
			if _, err := calendar.ParseDay(date); err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		rec := env.recorder()

		// Positive counts for today are kept as a manual session too.
		if date == "" && reps > 0 {
			sess, err := workout.NewManualSession(kind)
			if err != nil {
				return err
			}
			sess.Adjust(reps)
			day, err := rec.Record(cmd.Context(), sess)
			if err != nil {
				return err
			}
			printDay("Logged", day.Date, day.Totals.Pushup, day.Totals.Squat, day.MetGoal)
			return nil
		}

		if date == "" {
			date = rec.Today()
		}
		day, err := rec.AddReps(cmd.Context(), date, kind, reps)
		if err != nil {
			return err
		}
		printDay("Logged", day.Date, day.Totals.Pushup, day.Totals.Squat, day.MetGoal)
		return nil
	},
}

func init() {
	logCmd.Flags().String("date", "", "Local day to credit (YYYY-MM-DD, default today)")
}
