package config

import (
	"errors"
	"fmt"
)

// Validate checks settings every command depends on. Credentials are
// only checked by RequireDiscogs so offline commands run without them.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Store.validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Ads.validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s StoreConfig) validate() error {
	if s.FloorPrice <= 0 {
		return fmt.Errorf("store.floor_price must be positive, got %d", s.FloorPrice)
	}
	if s.DefaultPrice <= 0 {
		return fmt.Errorf("store.default_price must be positive, got %d", s.DefaultPrice)
	}
	if s.MinYear < 0 {
		return fmt.Errorf("store.min_year must not be negative, got %d", s.MinYear)
	}
	return nil
}

func (a AdsConfig) validate() error {
	if a.TileSize < 8 {
		return fmt.Errorf("ads.tile_size must be at least 8, got %d", a.TileSize)
	}
	if a.MinBucketSize < 1 {
		return fmt.Errorf("ads.min_bucket_size must be at least 1, got %d", a.MinBucketSize)
	}
	if a.Quality < 1 || a.Quality > 100 {
		return fmt.Errorf("ads.quality must be between 1 and 100, got %d", a.Quality)
	}
	return nil
}

func (l LoggingConfig) validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", l.Format)
	}
	return nil
}

// RequireDiscogs verifies the credentials network commands need.
func (c *Config) RequireDiscogs() error {
	if c.Discogs.Token == "" {
		return errors.New("discogs.token is required (set it in the config file or DISCOGS_TOKEN)")
	}
	if c.Discogs.Username == "" {
		return errors.New("discogs.username is required (set it in the config file or DISCOGS_USERNAME)")
	}
	return nil
}
