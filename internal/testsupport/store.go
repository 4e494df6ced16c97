package testsupport

import (
	"testing"

	"bindery/internal/cachedb"
	"bindery/internal/config"
)

// MustOpenCache opens the durable cover cache for tests and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *cachedb.DB {
	t.Helper()

	store, err := cachedb.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("cachedb.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
