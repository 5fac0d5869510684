// Package tracker runs the activity completion pipeline: a finished activity
// is appended to the history log, bumps its progress counter, and triggers an
// achievement recomputation against the new counters.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/adaptlearn/internal/achievements"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
	"github.com/myrjola/adaptlearn/internal/repositories"
)

// Snapshot is the complete per-user tracking state after a pipeline run.
type Snapshot struct {
	Counters     models.ProgressCounters `json:"progress"`
	Achievements []models.Achievement    `json:"achievements"`
	History      []models.HistoryItem    `json:"history"`
}

type Tracker struct {
	progress     *repositories.ProgressRepository
	achievements *repositories.AchievementRepository
	history      *repositories.HistoryRepository
	definitions  []models.AchievementDefinition
	logger       *slog.Logger
	now          func() time.Time
}

func New(
	progress *repositories.ProgressRepository,
	achievementRepo *repositories.AchievementRepository,
	history *repositories.HistoryRepository,
	definitions []models.AchievementDefinition,
	logger *slog.Logger,
) *Tracker {
	return &Tracker{
		progress:     progress,
		achievements: achievementRepo,
		history:      history,
		definitions:  definitions,
		logger:       logger.With("source", "Tracker"),
		now:          time.Now,
	}
}

// Complete records a finished activity and returns the updated state.
//
// The history append happens first so that a storage failure does not leave a
// counter bump without a matching log entry.
func (t *Tracker) Complete(ctx context.Context, email string, item models.HistoryItem) (Snapshot, error) {
	counter, err := item.Type.Counter()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "resolve activity counter", slog.String("type", string(item.Type)))
	}

	if err = t.history.Append(ctx, email, item); err != nil {
		return Snapshot{}, errors.Wrap(err, "append history item")
	}

	counters, err := t.progress.Increment(ctx, email, counter)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "increment progress counter")
	}

	unlocks := t.achievements.LoadUnlocks(ctx, email)
	recomputed := achievements.Recompute(counters, t.definitions, unlocks, t.now())
	if err = t.achievements.Save(ctx, email, recomputed); err != nil {
		return Snapshot{}, errors.Wrap(err, "persist achievements")
	}

	return Snapshot{
		Counters:     counters,
		Achievements: recomputed,
		History:      t.history.List(ctx, email),
	}, nil
}

// State loads the user's counters, recomputes achievements against them, and
// returns everything needed to render the dashboard. The recomputation is
// idempotent and nothing is persisted on read.
func (t *Tracker) State(ctx context.Context, email string) Snapshot {
	counters := t.progress.Load(ctx, email)
	unlocks := t.achievements.LoadUnlocks(ctx, email)
	return Snapshot{
		Counters:     counters,
		Achievements: achievements.Recompute(counters, t.definitions, unlocks, t.now()),
		History:      t.history.List(ctx, email),
	}
}

// UnlockedTitles returns the titles of currently unlocked achievements, used
// as context for achievement suggestions.
func (s Snapshot) UnlockedTitles() []string {
	var titles []string
	for _, achievement := range s.Achievements {
		if achievement.Unlocked() {
			titles = append(titles, achievement.Title)
		}
	}
	return titles
}
