package config

import (
	"fmt"
	"os"
	"strings"
)

// normalize expands paths, applies environment fallbacks, and fills
// gaps left by a partial config file.
func (c *Config) normalize() error {
	paths := []struct {
		name  string
		value *string
	}{
		{"paths.gallery_dir", &c.Paths.GalleryDir},
		{"paths.images_dir", &c.Paths.ImagesDir},
		{"paths.output_dir", &c.Paths.OutputDir},
		{"paths.data_dir", &c.Paths.DataDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"paths.cache_dir", &c.Paths.CacheDir},
		{"covers.input_dir", &c.Covers.InputDir},
	}
	for _, p := range paths {
		expanded, err := expandPath(*p.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.name, err)
		}
		*p.value = expanded
	}

	if c.Discogs.Token == "" {
		if env, ok := os.LookupEnv("DISCOGS_TOKEN"); ok {
			c.Discogs.Token = strings.TrimSpace(env)
		}
	}
	if c.Discogs.Username == "" {
		if env, ok := os.LookupEnv("DISCOGS_USERNAME"); ok {
			c.Discogs.Username = strings.TrimSpace(env)
		}
	}
	if c.Discogs.UserAgent == "" {
		c.Discogs.UserAgent = DefaultUserAgent
	}
	if c.Discogs.BaseURL == "" {
		c.Discogs.BaseURL = DefaultBaseURL
	}
	c.Discogs.BaseURL = strings.TrimRight(c.Discogs.BaseURL, "/")
	if c.Discogs.RequestDelayMS <= 0 {
		c.Discogs.RequestDelayMS = DefaultRequestDelayMS
	}

	if c.Store.SaleFolderPrefix == "" {
		c.Store.SaleFolderPrefix = DefaultSaleFolderPrefix
	}
	if c.Store.CacheTTLDays <= 0 {
		c.Store.CacheTTLDays = DefaultCacheTTLDays
	}
	if c.Ads.Quality <= 0 {
		c.Ads.Quality = DefaultJPEGQuality
	}
	if c.Covers.RequestDelayMS <= 0 {
		c.Covers.RequestDelayMS = DefaultCoversDelayMS
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
