package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/myrjola/adaptlearn/internal/achievements"
	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

type AchievementRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewAchievementRepository(dbs *db.Database, logger *slog.Logger) *AchievementRepository {
	return &AchievementRepository{
		dbs:    dbs,
		logger: logger.With("source", "AchievementRepository"),
	}
}

// LoadUnlocks returns the sticky unlock timestamps from the persisted
// achievement snapshot. Missing or corrupt snapshots yield an empty map so
// that recomputation can start from scratch.
func (r *AchievementRepository) LoadUnlocks(ctx context.Context, email string) map[string]time.Time {
	raw, ok, err := readSnapshot(ctx, r.dbs, storageKey("achievements", email))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not read achievement snapshot", errors.SlogError(err))
		return map[string]time.Time{}
	}
	if !ok {
		return map[string]time.Time{}
	}
	var snapshot []models.Achievement
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed achievement snapshot", errors.SlogError(err))
		return map[string]time.Time{}
	}
	return achievements.Unlocks(snapshot)
}

// Save persists the recomputed achievement list for the user.
func (r *AchievementRepository) Save(ctx context.Context, email string, list []models.Achievement) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "marshal achievement snapshot")
	}
	if err = writeSnapshot(ctx, r.dbs, storageKey("achievements", email), raw); err != nil {
		return errors.Wrap(err, "persist achievement snapshot")
	}
	return nil
}
