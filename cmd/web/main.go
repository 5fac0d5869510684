package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/myrjola/adaptlearn/internal/achievements"
	"github.com/myrjola/adaptlearn/internal/ai"
	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/envstruct"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/logging"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/myrjola/adaptlearn/internal/pprofserver"
	"github.com/myrjola/adaptlearn/internal/repositories"
	"github.com/myrjola/adaptlearn/internal/roleplay"
	"github.com/myrjola/adaptlearn/internal/tracker"
)

type application struct {
	logger          *slog.Logger
	aiClient        *ai.Client
	sessionManager  *scs.SessionManager
	tracker         *tracker.Tracker
	rolePlayManager *roleplay.Manager
}

type config struct {
	Addr          string `env:"ADAPTLEARN_ADDR" envDefault:"localhost:4000"`
	PprofPort     string `env:"ADAPTLEARN_PPROF_PORT" envDefault:":6060"`
	SqliteURL     string `env:"ADAPTLEARN_SQLITE_URL" envDefault:"./adaptlearn.sqlite"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:""`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	dbs, err := db.NewDatabase(ctx, cfg.SqliteURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := dbs.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	progress := repositories.NewProgressRepository(dbs, logger)
	achievementRepo := repositories.NewAchievementRepository(dbs, logger)
	history := repositories.NewHistoryRepository(dbs, logger)
	activityTracker := tracker.New(progress, achievementRepo, history, achievements.Definitions, logger)

	aiClient := ai.NewClient(ai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})

	rolePlayManager := roleplay.NewManager(aiClient, trackerRecorder{tracker: activityTracker}, nil, logger)

	app := application{
		logger:          logger,
		aiClient:        aiClient,
		sessionManager:  sessionManager,
		tracker:         activityTracker,
		rolePlayManager: rolePlayManager,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

// trackerRecorder feeds role-play completions into the activity pipeline.
type trackerRecorder struct {
	tracker *tracker.Tracker
}

func (t trackerRecorder) RecordCompletion(ctx context.Context, email string, item models.HistoryItem) error {
	_, err := t.tracker.Complete(ctx, email, item)
	return err
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// A missing .env file is fine, the environment can be set by other means.
	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelDebug, "no .env file loaded", errors.SlogError(err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}
