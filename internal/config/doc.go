// Package config defines the TOML configuration shared by every
// platter command: filesystem roots, Discogs credentials, pricing
// knobs, and logging settings. Load applies defaults, environment
// fallbacks, and path expansion so callers always see a usable value.
package config
