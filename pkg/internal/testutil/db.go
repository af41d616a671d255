package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mpetrov/flashdeck/pkg/db"
)

// SetupTestStore opens a fresh in-memory SQLite store for one test,
// migrated and seeded exactly like a real startup, and closes it when the
// test ends. Each test gets its own named in-memory database so state never
// leaks between tests.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	store, err := db.Open(dsn, db.Options{GormLogLevel: "silent"})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("failed to close test store: %v", err)
		}
	})
	return store
}
