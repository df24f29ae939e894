// Package testutil provides shared test helpers: a migrated SQLite store, an
// in-memory key-value store, and a fluent transaction builder.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pocketbook/internal/storage"
)

// SetupTestDB creates a migrated SQLite store in a temp directory and closes
// it when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "pocket.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
