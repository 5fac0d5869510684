package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

type ProgressRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewProgressRepository(dbs *db.Database, logger *slog.Logger) *ProgressRepository {
	return &ProgressRepository{
		dbs:    dbs,
		logger: logger.With("source", "ProgressRepository"),
	}
}

// Load returns the progress counters for the user. It never fails: a missing
// snapshot, a storage read error, or a corrupt snapshot all fall back to
// zeroed defaults. Failures beyond a missing snapshot are logged.
func (r *ProgressRepository) Load(ctx context.Context, email string) models.ProgressCounters {
	var counters models.ProgressCounters
	raw, ok, err := readSnapshot(ctx, r.dbs, storageKey("progress", email))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not read progress snapshot", errors.SlogError(err))
		return counters
	}
	if !ok {
		return counters
	}
	if err = json.Unmarshal(raw, &counters); err != nil {
		// Corrupt snapshots are treated as absent.
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed progress snapshot", errors.SlogError(err))
		return models.ProgressCounters{}
	}
	return counters
}

// Increment bumps the named counter, persists the snapshot immediately, and
// returns it. Read-modify-write without locking: last writer wins, which is
// acceptable for the single active tab this store is designed for.
func (r *ProgressRepository) Increment(
	ctx context.Context,
	email string,
	counter models.CounterName,
) (models.ProgressCounters, error) {
	counters := r.Load(ctx, email).Increment(counter)
	raw, err := json.Marshal(counters)
	if err != nil {
		return counters, errors.Wrap(err, "marshal progress snapshot")
	}
	if err = writeSnapshot(ctx, r.dbs, storageKey("progress", email), raw); err != nil {
		return counters, errors.Wrap(err, "persist progress snapshot", slog.String("counter", string(counter)))
	}
	return counters, nil
}
