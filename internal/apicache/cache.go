// Package apicache persists API responses in SQLite so repeated
// pricing runs avoid re-querying unchanged data. Entries are keyed by
// request URL and expire after a configurable TTL.
package apicache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Cache is an on-disk TTL cache of HTTP responses.
type Cache struct {
	db   *sql.DB
	path string
}

// Entry is one cached response.
type Entry struct {
	URL       string
	Status    int
	Payload   []byte
	FetchedAt time.Time
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path}
	if err := cache.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

func (c *Cache) applySchema(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS responses (
    url        TEXT PRIMARY KEY,
    status     INTEGER NOT NULL,
    payload    BLOB,
    fetched_at TEXT NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("check schema version: %w", err)
	}
	if count == 0 {
		if _, err := c.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached entry for url when one exists and is younger
// than ttl.
func (c *Cache) Get(ctx context.Context, url string, ttl time.Duration) (Entry, bool, error) {
	if c == nil || c.db == nil {
		return Entry{}, false, nil
	}
	var (
		entry     Entry
		fetchedAt string
	)
	row := c.db.QueryRowContext(ctx,
		"SELECT url, status, payload, fetched_at FROM responses WHERE url = ?", url)
	if err := row.Scan(&entry.URL, &entry.Status, &entry.Payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("read cache entry: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return Entry{}, false, nil
	}
	entry.FetchedAt = ts
	if ttl > 0 && time.Since(ts) > ttl {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Put stores or replaces the entry for url.
func (c *Cache) Put(ctx context.Context, url string, status int, payload []byte) error {
	if c == nil || c.db == nil {
		return nil
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (url, status, payload, fetched_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(url) DO UPDATE SET status = excluded.status,
             payload = excluded.payload, fetched_at = excluded.fetched_at`,
		url, status, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Prune removes every entry older than ttl and returns the count.
func (c *Cache) Prune(ctx context.Context, ttl time.Duration) (int64, error) {
	if c == nil || c.db == nil {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339Nano)
	res, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

// Count reports the number of cached responses.
func (c *Cache) Count(ctx context.Context) (int, error) {
	if c == nil || c.db == nil {
		return 0, nil
	}
	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM responses").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}
