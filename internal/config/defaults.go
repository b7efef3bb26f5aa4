package config

// Default values applied before any file is read.
const (
	DefaultUserAgent      = "platter/1.0 +https://github.com/platter/platter"
	DefaultBaseURL        = "https://api.discogs.com"
	DefaultRequestDelayMS = 1100

	DefaultFloorPrice       = 4
	DefaultPrice            = 9
	DefaultCacheTTLDays     = 14
	DefaultSaleFolderPrefix = "for sale"

	DefaultTileSize      = 192
	DefaultMinBucketSize = 36
	DefaultJPEGQuality   = 90

	DefaultCoversDelayMS = 400
)

// Default returns a configuration populated with every default value.
// Paths are left unexpanded; normalize resolves them.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			GalleryDir: "~/platter/gallery",
			OutputDir:  "~/platter/out",
			DataDir:    "~/platter/data",
			LogDir:     "~/.local/share/platter/logs",
			CacheDir:   "~/.cache/platter",
		},
		Discogs: DiscogsConfig{
			UserAgent:      DefaultUserAgent,
			BaseURL:        DefaultBaseURL,
			RequestDelayMS: DefaultRequestDelayMS,
		},
		Store: StoreConfig{
			FloorPrice:       DefaultFloorPrice,
			DefaultPrice:     DefaultPrice,
			CacheTTLDays:     DefaultCacheTTLDays,
			SaleFolderPrefix: DefaultSaleFolderPrefix,
		},
		Ads: AdsConfig{
			TileSize:      DefaultTileSize,
			MinBucketSize: DefaultMinBucketSize,
			Quality:       DefaultJPEGQuality,
		},
		Covers: CoversConfig{
			RequestDelayMS: DefaultCoversDelayMS,
		},
		Logging: LoggingConfig{
			Format: "console",
			Level:  "info",
		},
	}
}
