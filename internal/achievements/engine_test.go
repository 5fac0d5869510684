package achievements_test

import (
	"testing"
	"time"

	"github.com/myrjola/adaptlearn/internal/achievements"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/stretchr/testify/require"
)

func singleCriterion(threshold int) []models.AchievementDefinition {
	return []models.AchievementDefinition{
		{
			ID:          "quiz-master",
			Title:       "Quiz Master",
			Description: "Complete 5 quizzes",
			Criteria:    map[models.CounterName]int{models.CounterQuizzesTaken: threshold},
		},
	}
}

func TestRecompute(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		counters     models.ProgressCounters
		definitions  []models.AchievementDefinition
		wantProgress int
		wantUnlocked bool
	}{
		{
			name:         "partial progress",
			counters:     models.ProgressCounters{QuizzesTaken: 4},
			definitions:  singleCriterion(5),
			wantProgress: 80,
			wantUnlocked: false,
		},
		{
			name:         "threshold reached",
			counters:     models.ProgressCounters{QuizzesTaken: 5},
			definitions:  singleCriterion(5),
			wantProgress: 100,
			wantUnlocked: true,
		},
		{
			name:         "counter beyond threshold clamps to 100",
			counters:     models.ProgressCounters{QuizzesTaken: 17},
			definitions:  singleCriterion(5),
			wantProgress: 100,
			wantUnlocked: true,
		},
		{
			name:         "zero threshold is trivially satisfied",
			counters:     models.ProgressCounters{},
			definitions:  singleCriterion(0),
			wantProgress: 100,
			wantUnlocked: true,
		},
		{
			name:         "negative threshold is trivially satisfied",
			counters:     models.ProgressCounters{},
			definitions:  singleCriterion(-3),
			wantProgress: 100,
			wantUnlocked: true,
		},
		{
			name:     "criteria ratios are averaged with partial credit",
			counters: models.ProgressCounters{QuizzesTaken: 3, SimulationsRun: 1},
			definitions: []models.AchievementDefinition{
				{
					ID:    "well-rounded",
					Title: "Well-Rounded Learner",
					Criteria: map[models.CounterName]int{
						models.CounterQuizzesTaken:   3,
						models.CounterSimulationsRun: 4,
					},
				},
			},
			// (1.0 + 0.25) / 2 = 0.625
			wantProgress: 62,
			wantUnlocked: false,
		},
		{
			name:     "zero criteria never satisfiable",
			counters: models.ProgressCounters{QuizzesTaken: 100},
			definitions: []models.AchievementDefinition{
				{ID: "empty", Title: "Empty", Criteria: map[models.CounterName]int{}},
			},
			wantProgress: 0,
			wantUnlocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := achievements.Recompute(tt.counters, tt.definitions, nil, now)
			require.Len(t, got, 1)
			require.Equal(t, tt.wantProgress, got[0].Progress)
			require.Equal(t, tt.wantUnlocked, got[0].Unlocked())
			if tt.wantUnlocked {
				require.Equal(t, now, *got[0].UnlockedAt)
			}
		})
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	counters := models.ProgressCounters{QuizzesTaken: 2, SimulationsRun: 7, RolePlaysCompleted: 1}

	first := achievements.Recompute(counters, achievements.Definitions, map[string]time.Time{}, now)
	second := achievements.Recompute(counters, achievements.Definitions, map[string]time.Time{}, now)
	require.Equal(t, first, second)
}

func TestRecomputeStickyUnlock(t *testing.T) {
	originalUnlock := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	later := originalUnlock.Add(48 * time.Hour)
	priorUnlocks := map[string]time.Time{"quiz-master": originalUnlock}

	// Recomputation with higher counters must not move the prior timestamp.
	got := achievements.Recompute(
		models.ProgressCounters{QuizzesTaken: 50},
		singleCriterion(5),
		priorUnlocks,
		later,
	)
	require.Len(t, got, 1)
	require.Equal(t, originalUnlock, *got[0].UnlockedAt)
	require.Equal(t, 100, got[0].Progress)
}

func TestRecomputeUnlockTransition(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	definitions := singleCriterion(5)

	counters := models.ProgressCounters{QuizzesTaken: 4}
	got := achievements.Recompute(counters, definitions, nil, now)
	require.Equal(t, 80, got[0].Progress)
	require.Nil(t, got[0].UnlockedAt)

	counters = counters.Increment(models.CounterQuizzesTaken)
	got = achievements.Recompute(counters, definitions, achievements.Unlocks(got), now)
	require.Equal(t, 100, got[0].Progress)
	require.Equal(t, now, *got[0].UnlockedAt)
}

func TestUnlocks(t *testing.T) {
	unlockedAt := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)
	snapshot := []models.Achievement{
		{ID: "first-quiz", UnlockedAt: &unlockedAt, Progress: 100},
		{ID: "quiz-master", UnlockedAt: nil, Progress: 40},
	}
	unlocks := achievements.Unlocks(snapshot)
	require.Equal(t, map[string]time.Time{"first-quiz": unlockedAt}, unlocks)
}
