package testsupport

import (
	"path/filepath"
	"testing"

	"platter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.GalleryDir = filepath.Join(base, "gallery")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return cfg
}

// WithDiscogsCredentials sets the API token and username on the test config.
func WithDiscogsCredentials(token, username string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discogs.Token = token
		cfg.Discogs.Username = username
	}
}

// WithBaseURL points the Discogs client at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discogs.BaseURL = url
		cfg.Discogs.RequestDelayMS = 0
	}
}

// WithSaleFolderPrefix overrides the sale folder filter.
func WithSaleFolderPrefix(prefix string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Store.SaleFolderPrefix = prefix
	}
}

// WithTileSize overrides the ad grid tile size.
func WithTileSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ads.TileSize = size
	}
}
