package achievements

import (
	"time"

	"github.com/myrjola/adaptlearn/internal/models"
)

// Recompute derives the unlock state and completion percentage of every
// definition from the given progress counters.
//
// Unlocks are sticky: a definition with a prior unlock timestamp keeps that
// timestamp untouched and reports 100% progress. Otherwise the progress is
// the mean of the per-criterion completion ratios, each clamped to 1.0,
// floored to an integer percentage. A criterion with threshold <= 0 is
// trivially satisfied. A definition without criteria reports 0% and never
// unlocks on its own.
//
// The function is pure: calling it twice with identical inputs produces
// identical output. Persisting the result is the caller's responsibility.
func Recompute(
	counters models.ProgressCounters,
	definitions []models.AchievementDefinition,
	priorUnlocks map[string]time.Time,
	now time.Time,
) []models.Achievement {
	result := make([]models.Achievement, 0, len(definitions))
	for _, def := range definitions {
		achievement := models.Achievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Criteria:    def.Criteria,
			UnlockedAt:  nil,
			Progress:    0,
		}

		if unlockedAt, ok := priorUnlocks[def.ID]; ok {
			unlockedAt := unlockedAt
			achievement.UnlockedAt = &unlockedAt
			achievement.Progress = 100
			result = append(result, achievement)
			continue
		}

		achievement.Progress = progressPercentage(counters, def.Criteria)
		if achievement.Progress >= 100 {
			unlockedAt := now
			achievement.UnlockedAt = &unlockedAt
			achievement.Progress = 100
		}
		result = append(result, achievement)
	}
	return result
}

// progressPercentage averages the clamped per-criterion completion ratios.
func progressPercentage(counters models.ProgressCounters, criteria map[models.CounterName]int) int {
	if len(criteria) == 0 {
		return 0
	}
	total := 0.0
	for name, threshold := range criteria {
		if threshold <= 0 {
			// Trivially satisfied, avoids dividing by zero.
			total += 1.0
			continue
		}
		ratio := float64(counters.Get(name)) / float64(threshold)
		if ratio > 1.0 {
			ratio = 1.0
		}
		total += ratio
	}
	return int(total / float64(len(criteria)) * 100)
}

// Unlocks extracts the sticky unlock timestamps from a previously persisted
// achievement snapshot.
func Unlocks(achievements []models.Achievement) map[string]time.Time {
	unlocks := make(map[string]time.Time, len(achievements))
	for _, achievement := range achievements {
		if achievement.UnlockedAt != nil {
			unlocks[achievement.ID] = *achievement.UnlockedAt
		}
	}
	return unlocks
}
