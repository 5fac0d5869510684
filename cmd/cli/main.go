package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/myrjola/adaptlearn/internal/achievements"
	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/myrjola/adaptlearn/internal/repositories"
	"github.com/myrjola/adaptlearn/internal/tracker"
	"github.com/spf13/cobra"
)

var sqliteURL string

func init() {
	// A missing .env file is fine, the environment can be set by other means.
	_ = godotenv.Load()

	defaultURL := os.Getenv("ADAPTLEARN_SQLITE_URL")
	if defaultURL == "" {
		defaultURL = "./adaptlearn.sqlite"
	}
	rootCmd.PersistentFlags().StringVar(&sqliteURL, "sqlite-url", defaultURL, "SQLite URL")
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(seedCmd)
}

var rootCmd = &cobra.Command{
	Use:  "adaptlearn-cli",
	Long: `Command line utilities for AdaptLearn https://github.com/myrjola/adaptlearn`,
}

// newTracker opens the database and wires the tracking pipeline the same way
// the web application does.
func newTracker(cmd *cobra.Command) (*tracker.Tracker, func() error, error) {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	dbs, err := db.NewDatabase(cmd.Context(), sqliteURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database", slog.String("url", sqliteURL))
	}
	progress := repositories.NewProgressRepository(dbs, logger)
	achievementRepo := repositories.NewAchievementRepository(dbs, logger)
	history := repositories.NewHistoryRepository(dbs, logger)
	return tracker.New(progress, achievementRepo, history, achievements.Definitions, logger), dbs.Close, nil
}

var stateCmd = &cobra.Command{
	Use:   "state <email>",
	Short: "Print a user's tracking state as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		activityTracker, closeDB, err := newTracker(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = closeDB() }()

		snapshot := activityTracker.State(cmd.Context(), args[0])
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(snapshot); err != nil {
			return errors.Wrap(err, "encode snapshot")
		}
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List the predefined achievement catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, definition := range achievements.Definitions {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s: %s\n",
				definition.ID, definition.Title, definition.Description); err != nil {
				return errors.Wrap(err, "write achievement")
			}
		}
		return nil
	},
}

var (
	seedQuizzes     int
	seedSimulations int
)

func init() {
	seedCmd.Flags().IntVar(&seedQuizzes, "quizzes", 1, "number of quiz completions to record")
	seedCmd.Flags().IntVar(&seedSimulations, "simulations", 0, "number of simulation completions to record")
}

var seedCmd = &cobra.Command{
	Use:   "seed <email>",
	Short: "Record synthetic activity completions for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		activityTracker, closeDB, err := newTracker(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = closeDB() }()

		email := args[0]
		for i := 0; i < seedQuizzes; i++ {
			item := models.HistoryItem{
				ID:        uuid.NewString(),
				Type:      models.ActivityQuiz,
				Title:     fmt.Sprintf("Seeded quiz %d", i+1),
				Timestamp: time.Now(),
				Details:   models.QuizDetails{Topic: "Seed", Difficulty: "beginner"},
			}
			if _, err = activityTracker.Complete(cmd.Context(), email, item); err != nil {
				return errors.Wrap(err, "record quiz completion")
			}
		}
		for i := 0; i < seedSimulations; i++ {
			item := models.HistoryItem{
				ID:        uuid.NewString(),
				Type:      models.ActivitySimulation,
				Title:     fmt.Sprintf("Seeded simulation %d", i+1),
				Timestamp: time.Now(),
				Details:   models.SimulationDetails{Description: "Seeded scenario", Tasks: []string{"Review"}},
			}
			if _, err = activityTracker.Complete(cmd.Context(), email, item); err != nil {
				return errors.Wrap(err, "record simulation completion")
			}
		}
		if _, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded %d quizzes and %d simulations for %s\n",
			seedQuizzes, seedSimulations, email); err != nil {
			return errors.Wrap(err, "write summary")
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
