package testsupport

import (
	"testing"

	"platter/internal/apicache"
	"platter/internal/config"
)

// MustOpenCache opens the API response cache for tests and registers
// cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *apicache.Cache {
	t.Helper()

	cache, err := apicache.Open(cfg.CacheDBPath())
	if err != nil {
		t.Fatalf("apicache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
