package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/streaks/internal/calendar"
	"github.com/abhisek/streaks/internal/stats"
	"github.com/abhisek/streaks/internal/ui/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks, adherence and the activity heatmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		asOfFlag, _ := cmd.Flags().GetString("as-of")
		window, _ := cmd.Flags().GetInt("window")
		weeks, _ := cmd.Flags().GetInt("weeks")
		asJSON, _ := cmd.Flags().GetBool("json")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		asOf := calendar.DayIn(time.Now(), env.loc)
		if asOfFlag != "" {
			if asOf, err = calendar.ParseDay(asOfFlag); err != nil {
				return fmt.Errorf("--as-of: %w", err)
			}
		}

		records, err := env.store.DayRepo().AllDays(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		summary := stats.Summarize(records, asOf, stats.Options{WindowDays: window, Weeks: weeks})

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		today := stats.DayRecord{Date: asOf.String()}
		for _, rec := range records {
			if rec.Date == today.Date {
				today = rec
			}
		}
		lipgloss.Println(report.Render(report.Input{
			Summary: summary,
			Today:   today,
			Goals:   env.cfg.ExerciseGoals(),
		}))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("as-of", "", "Report as of this local day (YYYY-MM-DD, default today)")
	statsCmd.Flags().Int("window", stats.DefaultWindowDays, "Days covered by adherence, totals and the heatmap")
	statsCmd.Flags().Int("weeks", stats.DefaultWeeks, "Weeks covered by weekday consistency")
	statsCmd.Flags().Bool("json", false, "Print the summary as JSON")
}
