package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/myrjola/adaptlearn/internal/repositories"
	"github.com/myrjola/adaptlearn/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository(t *testing.T) {
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewProgressRepository(dbs, logger)
	ctx := context.Background()

	t.Run("load defaults for unknown user", func(t *testing.T) {
		counters := repo.Load(ctx, "nobody@example.com")
		require.Equal(t, models.ProgressCounters{}, counters)
	})

	t.Run("increment persists and returns snapshot", func(t *testing.T) {
		counters, err := repo.Increment(ctx, "ada@example.com", models.CounterQuizzesTaken)
		require.NoError(t, err)
		require.Equal(t, 1, counters.QuizzesTaken)

		counters, err = repo.Increment(ctx, "ada@example.com", models.CounterQuizzesTaken)
		require.NoError(t, err)
		require.Equal(t, 2, counters.QuizzesTaken)

		counters, err = repo.Increment(ctx, "ada@example.com", models.CounterRolePlaysCompleted)
		require.NoError(t, err)
		require.Equal(t, models.ProgressCounters{QuizzesTaken: 2, RolePlaysCompleted: 1}, counters)

		require.Equal(t, counters, repo.Load(ctx, "ada@example.com"))
	})

	t.Run("users are isolated", func(t *testing.T) {
		_, err := repo.Increment(ctx, "grace@example.com", models.CounterSimulationsRun)
		require.NoError(t, err)
		require.Equal(t, 0, repo.Load(ctx, "ada@example.com").SimulationsRun)
	})

	t.Run("malformed snapshot falls back to defaults", func(t *testing.T) {
		_, err := dbs.ReadWrite.Exec(
			`INSERT INTO kv_store (key, value) VALUES ('adapt-learn-progress-corrupt@example.com', 'not json')`)
		require.NoError(t, err)
		require.Equal(t, models.ProgressCounters{}, repo.Load(ctx, "corrupt@example.com"))
	})
}
