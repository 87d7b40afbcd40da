package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent workout sessions or daily totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		days, _ := cmd.Flags().GetInt("days")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if days > 0 {
			return printDayTotals(cmd, env, days)
		}

		sessions, err := env.store.SessionRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		// Header.
		fmt.Printf("%-10s  %-16s  %-8s  %-7s  %5s  %8s\n",
			"Day", "Started", "Exercise", "Mode", "Reps", "Duration")
		fmt.Println(strings.Repeat("─", 64))

		for _, s := range sessions {
			dur := s.EndedAt.Sub(s.StartedAt).Round(time.Second)
			fmt.Printf("%-10s  %-16s  %-8s  %-7s  %5d  %8s\n",
				s.Day,
				s.StartedAt.In(env.loc).Format("2006-01-02 15:04"),
				s.Exercise,
				s.Mode,
				s.Reps,
				dur,
			)
		}
		return nil
	},
}

// printDayTotals lists the stored day records of the last n local days.
func printDayTotals(cmd *cobra.Command, env *appEnv, n int) error {
	to := calendar.DayIn(time.Now(), env.loc)
	from := to.AddDays(1 - n)
	records, err := env.store.DayRepo().DaysBetween(cmd.Context(), from.String(), to.String())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No activity since %s.\n", from)
		return nil
	}

	fmt.Printf("%-10s  %8s  %6s  %s\n", "Day", "Push-ups", "Squats", "Goal")
	fmt.Println(strings.Repeat("─", 36))
	for _, rec := range records {
		goal := ""
		if rec.MetGoal {
			goal = "✓"
		}
		fmt.Printf("%-10s  %8d  %6d  %s\n", rec.Date, rec.Totals.Pushup, rec.Totals.Squat, goal)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
	historyCmd.Flags().Int("days", 0, "List daily totals for the last N days instead of sessions")
}
