// Package config loads and validates platter configuration from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// DefaultConfigDir is the directory containing the primary config file.
const DefaultConfigDir = "~/.config/platter"

// DefaultConfigPath points at the primary config file location.
const DefaultConfigPath = DefaultConfigDir + "/config.toml"

// localConfigName is the per-directory fallback consulted when the
// primary file does not exist.
const localConfigName = "platter.toml"

// Config captures every tunable used by the platter commands.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Discogs DiscogsConfig `toml:"discogs"`
	Store   StoreConfig   `toml:"store"`
	Ads     AdsConfig     `toml:"ads"`
	Covers  CoversConfig  `toml:"covers"`
	Logging LoggingConfig `toml:"logging"`
}

// PathsConfig holds the filesystem roots used by every pipeline.
type PathsConfig struct {
	// GalleryDir is the root containing exported gallery data: one or
	// more records.csv files plus the image folders they reference.
	GalleryDir string `toml:"gallery_dir"`
	// ImagesDir overrides the image root when cover images live apart
	// from the gallery export. Empty means resolve against GalleryDir.
	ImagesDir string `toml:"images_dir"`
	// OutputDir receives generated artifacts (ads, store site, covers).
	OutputDir string `toml:"output_dir"`
	// DataDir holds hand-maintained inputs such as pricing overrides.
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// DiscogsConfig holds credentials and collection settings for the
// Discogs API.
type DiscogsConfig struct {
	Token     string `toml:"token"`
	Username  string `toml:"username"`
	UserAgent string `toml:"user_agent"`
	BaseURL   string `toml:"base_url"`
	// RequestDelayMS paces successive API calls.
	RequestDelayMS int `toml:"request_delay_ms"`
	// Folders lists the collection folders to pull. Folder names
	// decide which releases count as sale stock.
	Folders []FolderConfig `toml:"folders"`
}

// FolderConfig identifies one Discogs collection folder.
type FolderConfig struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

// StoreConfig tunes the inventory build.
type StoreConfig struct {
	// FloorPrice is the minimum listed price in whole dollars.
	FloorPrice int `toml:"floor_price"`
	// DefaultPrice is used when no market signal is available.
	DefaultPrice int `toml:"default_price"`
	// MinYear drops releases older than this when set above zero.
	MinYear int `toml:"min_year"`
	// CacheTTLDays bounds the age of cached API responses.
	CacheTTLDays int `toml:"cache_ttl_days"`
	// SaleFolderPrefix selects folders whose releases are sale stock.
	SaleFolderPrefix string `toml:"sale_folder_prefix"`
}

// AdsConfig tunes the genre ad grid renderer.
type AdsConfig struct {
	// TileSize is the square cell edge in pixels.
	TileSize int `toml:"tile_size"`
	// MinBucketSize is the smallest genre bucket rendered on its own;
	// smaller buckets are merged into a miscellaneous grid.
	MinBucketSize int `toml:"min_bucket_size"`
	// Seed fixes the padding shuffle when non-zero.
	Seed int64 `toml:"seed"`
	// Quality is the JPEG quality for rendered grids.
	Quality int `toml:"quality"`
}

// CoversConfig tunes the cover hunt pipeline.
type CoversConfig struct {
	// InputDir holds the top-sellers CSV exports to hunt covers for.
	InputDir string `toml:"input_dir"`
	// RequestDelayMS paces image downloads.
	RequestDelayMS int `toml:"request_delay_ms"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Load reads configuration from path, or from the default locations
// when path is empty. A missing file yields defaults plus a false
// second return.
func Load(path string) (*Config, bool, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, false, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if path != "" {
			return nil, false, fmt.Errorf("config file not found: %s", resolved)
		}
		if err := cfg.normalize(); err != nil {
			return nil, false, err
		}
		return cfg, false, nil
	default:
		return nil, false, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// ResolvePath returns the config file path Load would read for the
// given override.
func ResolvePath(path string) (string, error) {
	return resolveConfigPath(path)
}

// ExpandPath resolves a leading ~ against the current user's home and
// makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// resolveConfigPath expands the requested path, falling back to the
// default location and then a platter.toml beside the working
// directory.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return expandPath(path)
	}
	primary, err := expandPath(DefaultConfigPath)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(primary); statErr == nil {
		return primary, nil
	}
	if _, statErr := os.Stat(localConfigName); statErr == nil {
		return localConfigName, nil
	}
	return primary, nil
}

// expandPath resolves a leading ~ against the current user's home.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Abs(path)
}

// EnsureDirectories creates the output, data, log, and cache roots.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.DataDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AdsOutputDir is where rendered genre grids land.
func (c *Config) AdsOutputDir() string {
	return filepath.Join(c.Paths.OutputDir, "ads")
}

// StoreSiteDir is the root of the generated store site.
func (c *Config) StoreSiteDir() string {
	return filepath.Join(c.Paths.OutputDir, "store")
}

// StoreInventoryPath is the canonical inventory JSON document.
func (c *Config) StoreInventoryPath() string {
	return filepath.Join(c.StoreSiteDir(), "inventory.json")
}

// PricingOverridesPath is the hand-maintained price override CSV.
func (c *Config) PricingOverridesPath() string {
	return filepath.Join(c.Paths.DataDir, "pricing_overrides.csv")
}

// PriceSheetPath is where the exported price sheet CSV lands.
func (c *Config) PriceSheetPath() string {
	return filepath.Join(c.Paths.DataDir, "price_sheet.csv")
}

// CoversOutputDir is where hunted covers and the gallery page land.
func (c *Config) CoversOutputDir() string {
	return filepath.Join(c.Paths.OutputDir, "covers")
}

// CacheDBPath is the SQLite file backing the API response cache.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.Paths.CacheDir, "api_cache.db")
}

// LockPath guards concurrent store builds.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.CacheDir, "platter.lock")
}

// ImagesRoot is the directory release images resolve against.
func (c *Config) ImagesRoot() string {
	if c.Paths.ImagesDir != "" {
		return c.Paths.ImagesDir
	}
	return c.Paths.GalleryDir
}

// CreateSample writes the embedded sample configuration to path,
// refusing to overwrite an existing file.
func CreateSample(path string) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err == nil {
		return fmt.Errorf("config file already exists: %s", resolved)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
