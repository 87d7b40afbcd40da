package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/streaks/internal/config"
	"github.com/abhisek/streaks/internal/store"
	"github.com/abhisek/streaks/internal/workout"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Daily push-up and squat streak tracker",
	Long: "Streaks counts push-ups and squats from pose landmarks or accelerometer samples, " +
		"records daily totals and reports streaks, adherence and activity heatmaps.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STREAKS_DB env var)")
	rootCmd.PersistentFlags().String("tz", "", "IANA time zone for day boundaries (overrides STREAKS_TZ, default local)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// appEnv is what most commands need: settings, the resolved zone and an
// open store.
type appEnv struct {
	cfg   config.Config
	loc   *time.Location
	store *store.Store
}

func (r *appEnv) Close() error {
	return r.store.Close()
}

func (r *appEnv) recorder() *workout.Recorder {
	return workout.NewRecorder(r.store.DayRepo(), r.store.SessionRepo(), r.cfg.ExerciseGoals(), r.loc)
}

// openEnv loads config (flags > env > defaults), resolves the time zone
// once, and opens the store.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := config.LoadFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &appEnv{cfg: cfg, loc: loc, store: st}, nil
}

// resolveDBPath returns the database path using --db / STREAKS_DB first,
// then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
