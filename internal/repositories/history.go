package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/models"
)

// HistoryRepository is the append-only activity log. Items are immutable once
// appended; there is no update or delete.
type HistoryRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewHistoryRepository(dbs *db.Database, logger *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		dbs:    dbs,
		logger: logger.With("source", "HistoryRepository"),
	}
}

// Append adds the item to the end of the user's log and persists it.
func (r *HistoryRepository) Append(ctx context.Context, email string, item models.HistoryItem) error {
	items := r.load(ctx, email)
	items = append(items, item)
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "marshal history snapshot")
	}
	if err = writeSnapshot(ctx, r.dbs, storageKey("history", email), raw); err != nil {
		return errors.Wrap(err, "persist history snapshot", slog.String("item_id", item.ID))
	}
	return nil
}

// List returns the user's history sorted newest-first by timestamp. Items
// with equal timestamps keep their insertion order.
func (r *HistoryRepository) List(ctx context.Context, email string) []models.HistoryItem {
	items := r.load(ctx, email)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items
}

// load reads the stored snapshot in insertion order. Missing or corrupt
// snapshots yield an empty log.
func (r *HistoryRepository) load(ctx context.Context, email string) []models.HistoryItem {
	raw, ok, err := readSnapshot(ctx, r.dbs, storageKey("history", email))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not read history snapshot", errors.SlogError(err))
		return nil
	}
	if !ok {
		return nil
	}
	var items []models.HistoryItem
	if err = json.Unmarshal(raw, &items); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed history snapshot", errors.SlogError(err))
		return nil
	}
	return items
}
