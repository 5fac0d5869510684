package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/myrjola/adaptlearn/internal/db"
	"github.com/myrjola/adaptlearn/internal/errors"
)

// storageKey builds the per-user storage key, e.g. adapt-learn-progress-ada@example.com.
func storageKey(kind string, email string) string {
	return fmt.Sprintf("adapt-learn-%s-%s", kind, email)
}

// readSnapshot loads the JSON snapshot stored under key. The second return
// value reports whether a snapshot exists.
func readSnapshot(ctx context.Context, dbs *db.Database, key string) ([]byte, bool, error) {
	var value string
	stmt := `SELECT value FROM kv_store WHERE key = ?`
	if err := dbs.ReadOnly.QueryRowxContext(ctx, stmt, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read snapshot")
	}
	return []byte(value), true, nil
}

// writeSnapshot persists the JSON snapshot under key, replacing any previous
// snapshot. Last writer wins.
func writeSnapshot(ctx context.Context, dbs *db.Database, key string, value []byte) error {
	stmt := `INSERT INTO kv_store (key, value, updated_at)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := dbs.ReadWrite.ExecContext(ctx, stmt, key, string(value)); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}
