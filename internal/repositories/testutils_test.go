package repositories_test

import (
	"context"
	"testing"

	"github.com/myrjola/adaptlearn/internal/db"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.Database {
	t.Helper()
	dbs, err := db.NewDatabase(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})
	return dbs
}
