package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"platter/internal/apicache"
	"platter/internal/config"
	"platter/internal/discogs"
	"platter/internal/logging"
)

// Builder orchestrates inventory builds.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Result is the outcome of a build or sync run.
type Result struct {
	Items         []Item
	Stats         Stats
	InventoryPath string
	BackupPath    string
}

// NewBuilder wires a builder against the loaded configuration.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{cfg: cfg, logger: logging.NewComponentLogger(logger, "store")}
}

// acquireLock guards against concurrent builds clobbering the site
// output and cache.
func (b *Builder) acquireLock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(b.cfg.LockPath()), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(b.cfg.LockPath())
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !acquired {
		return nil, errors.New("another store build is already running")
	}
	return lock, nil
}

// BuildFromCSV builds the inventory from gallery records.csv exports:
// offline, priced from recorded high-sold values and overrides.
func (b *Builder) BuildFromCSV(ctx context.Context) (*Result, error) {
	lock, err := b.acquireLock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	files, err := DiscoverRecordsCSVs(b.cfg.Paths.GalleryDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no records.csv found under %s", b.cfg.Paths.GalleryDir)
	}
	b.logger.Info("reading gallery exports", logging.Int("files", len(files)))

	rows, err := ReadRecordsCSVs(files)
	if err != nil {
		return nil, err
	}

	agg := Aggregate(rows, Options{
		SaleFolderPrefix: b.cfg.Store.SaleFolderPrefix,
		MinYear:          b.cfg.Store.MinYear,
	})
	stats := agg.Stats()

	overrides, err := LoadOverrides(b.cfg.PricingOverridesPath())
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(agg.Groups()))
	for _, group := range agg.Groups() {
		item := group.Item
		if ov, ok := overrides[item.Key]; ok {
			ApplyOverride(&item, ov)
		}
		if item.Price == "" {
			high, hasHigh := group.HighSold()
			item.Price, _ = ChoosePrice("", 0, false, high, hasHigh,
				b.cfg.Store.FloorPrice, b.cfg.Store.DefaultPrice)
		}
		items = append(items, item)
	}

	return b.emit(items, stats)
}

// SyncFromDiscogs rebuilds the inventory from the Discogs collection
// API: sale folders are fetched and priced from marketplace data,
// with responses cached between runs.
func (b *Builder) SyncFromDiscogs(ctx context.Context) (*Result, error) {
	lock, err := b.acquireLock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	cache, err := apicache.Open(b.cfg.CacheDBPath())
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	client, err := discogs.New(discogs.Config{
		Token:     b.cfg.Discogs.Token,
		Username:  b.cfg.Discogs.Username,
		UserAgent: b.cfg.Discogs.UserAgent,
		BaseURL:   b.cfg.Discogs.BaseURL,
		Delay:     time.Duration(b.cfg.Discogs.RequestDelayMS) * time.Millisecond,
		Cache:     cacheAdapter{cache: cache},
		CacheTTL:  time.Duration(b.cfg.Store.CacheTTLDays) * 24 * time.Hour,
		Logger:    b.logger,
	})
	if err != nil {
		return nil, err
	}

	folders, err := b.saleFolders(ctx, client)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, fmt.Errorf("no collection folders match prefix %q", b.cfg.Store.SaleFolderPrefix)
	}

	yearMap := LoadYearMap(filepath.Join(b.cfg.Paths.GalleryDir, "records.csv"))

	var (
		rows  []Row
		stats Stats
	)
	for _, folder := range folders {
		releases, pageStats, err := client.FolderReleases(ctx, folder.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch folder %q: %w", folder.Name, err)
		}
		stats.Pages += pageStats.Pages
		stats.HTTPErrors += pageStats.HTTPErrors
		b.logger.Info("folder fetched",
			logging.String("folder", folder.Name),
			logging.Int("pages", pageStats.Pages),
			logging.Int("rows", pageStats.Rows),
			logging.Int("http_errors", pageStats.HTTPErrors))
		rows = append(rows, RowsFromReleases(releases, folder.Name, yearMap)...)
	}

	agg := Aggregate(rows, Options{
		SaleFolderPrefix: b.cfg.Store.SaleFolderPrefix,
		MinYear:          b.cfg.Store.MinYear,
	})
	aggStats := agg.Stats()
	stats.Rows = aggStats.Rows
	stats.DupRows = aggStats.DupRows
	stats.Groups = aggStats.Groups

	overrides, err := LoadOverrides(b.cfg.PricingOverridesPath())
	if err != nil {
		return nil, err
	}

	pricer := NewPricer(client, b.cfg.Store.FloorPrice, b.logger)
	groups := agg.Groups()
	items := make([]Item, 0, len(groups))
	for i, group := range groups {
		item := group.Item
		if ov, ok := overrides[item.Key]; ok {
			ApplyOverride(&item, ov)
		}
		if item.Price == "" {
			if i == 0 || (i+1)%100 == 0 {
				b.logger.Info("pricing progress",
					logging.Int("done", i+1),
					logging.Int("total", len(groups)))
			}
			price, err := pricer.PriceGroup(ctx, group, &stats)
			if err != nil {
				return nil, err
			}
			item.Price = price
		}
		items = append(items, item)
	}

	b.downloadCovers(ctx, client, items)
	return b.emit(items, stats)
}

// saleFolders resolves the folders to sync: the configured list when
// present, otherwise the account's folders filtered by the sale
// prefix.
func (b *Builder) saleFolders(ctx context.Context, client *discogs.Client) ([]discogs.Folder, error) {
	prefix := strings.ToLower(b.cfg.Store.SaleFolderPrefix)
	if len(b.cfg.Discogs.Folders) > 0 {
		var out []discogs.Folder
		for _, f := range b.cfg.Discogs.Folders {
			if strings.HasPrefix(strings.ToLower(f.Name), prefix) {
				out = append(out, discogs.Folder{ID: f.ID, Name: f.Name})
			}
		}
		return out, nil
	}
	folders, err := client.Folders(ctx)
	if err != nil {
		return nil, err
	}
	var out []discogs.Folder
	for _, f := range folders {
		if strings.HasPrefix(strings.ToLower(f.Name), prefix) {
			out = append(out, f)
		}
	}
	return out, nil
}

// downloadCovers fetches each item's remote cover into the site
// images directory and rewrites the reference. Download failures keep
// the remote URL so the storefront can still show something.
func (b *Builder) downloadCovers(ctx context.Context, client *discogs.Client, items []Item) {
	imagesDir := filepath.Join(b.cfg.StoreSiteDir(), "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		b.logger.Warn("cannot create site images directory", logging.Error(err))
		return
	}
	for i := range items {
		ref := items[i].Image
		if !strings.Contains(ref, "://") {
			continue
		}
		name := ImageFileName(ref)
		dest := filepath.Join(imagesDir, name)
		if _, err := os.Stat(dest); err != nil {
			data, err := client.DownloadImage(ctx, ref)
			if err != nil {
				b.logger.Warn("cover download failed",
					logging.String("url", ref),
					logging.Error(err))
				continue
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				b.logger.Warn("cover write failed", logging.Error(err))
				continue
			}
		}
		items[i].Image = "images/" + name
	}
}

// emit writes the site artifacts shared by both build variants.
func (b *Builder) emit(items []Item, stats Stats) (*Result, error) {
	siteDir := b.cfg.StoreSiteDir()
	if err := WriteStorefront(siteDir); err != nil {
		return nil, err
	}
	copied, err := CopySiteImages(items, filepath.Join(b.cfg.Paths.GalleryDir, "images"), siteDir)
	if err != nil {
		return nil, err
	}
	stats.ImagesCopied = copied

	backup, err := WriteInventory(b.cfg.StoreInventoryPath(), items)
	if err != nil {
		return nil, err
	}
	b.logger.Info("inventory written",
		logging.String("path", b.cfg.StoreInventoryPath()),
		logging.Int("items", len(items)),
		logging.Int("images_copied", copied))
	return &Result{
		Items:         items,
		Stats:         stats,
		InventoryPath: b.cfg.StoreInventoryPath(),
		BackupPath:    backup,
	}, nil
}

// cacheAdapter bridges the SQLite response cache to the client's
// cache interface.
type cacheAdapter struct {
	cache *apicache.Cache
}

func (a cacheAdapter) Get(ctx context.Context, url string, ttl time.Duration) ([]byte, int, bool) {
	entry, ok, err := a.cache.Get(ctx, url, ttl)
	if err != nil || !ok {
		return nil, 0, false
	}
	return entry.Payload, entry.Status, true
}

func (a cacheAdapter) Put(ctx context.Context, url string, status int, payload []byte) {
	_ = a.cache.Put(ctx, url, status, payload)
}
