package covers

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"platter/internal/discogs"
	"platter/internal/fileutil"
	"platter/internal/logging"
)

//go:embed site/index.html
var galleryPage []byte

// Item is one gallery entry. Field names match what the gallery page
// reads from gallery.json.
type Item struct {
	ReleaseID  int    `json:"rid"`
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Year       int    `json:"year,omitempty"`
	Image      string `json:"img,omitempty"`
	DiscogsURL string `json:"discogs_url"`
}

// GalleryDocument is the gallery.json envelope.
type GalleryDocument struct {
	Items []Item `json:"items"`
}

// Stats counts the outcome of a hunt run.
type Stats struct {
	Files          int
	Rows           int
	Fetched        int
	FetchErrors    int
	Downloaded     int
	DownloadErrors int
}

// Result is the outcome of a hunt run.
type Result struct {
	Items       []Item
	Stats       Stats
	GalleryPath string
}

// ReleaseClient is the slice of the Discogs client the hunt needs.
type ReleaseClient interface {
	GetRelease(ctx context.Context, releaseID int) (discogs.Release, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Hunter downloads covers for top-selling releases and writes the
// gallery artifacts.
type Hunter struct {
	client ReleaseClient
	logger *slog.Logger
}

// NewHunter wires a hunter against a Discogs client.
func NewHunter(client ReleaseClient, logger *slog.Logger) *Hunter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hunter{client: client, logger: logging.NewComponentLogger(logger, "covers")}
}

// ChooseCover picks the full-size cover URL for a release: the image
// typed "primary" when present, otherwise the first image.
func ChooseCover(release discogs.Release) string {
	if len(release.Images) == 0 {
		return ""
	}
	for _, img := range release.Images {
		if strings.EqualFold(img.Type, "primary") {
			return img.URL()
		}
	}
	return release.Images[0].URL()
}

// Run reads every top-seller export under inputDir, fetches release
// details, downloads covers into outDir/covers, and writes
// gallery.json plus the gallery page into outDir. Items are sorted
// year ascending with unknown years last, then artist and title.
func (h *Hunter) Run(ctx context.Context, inputDir, outDir string) (*Result, error) {
	files, err := DiscoverTopSellerCSVs(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no top-seller CSVs found under %s", inputDir)
	}

	coversDir := filepath.Join(outDir, "covers")
	if err := os.MkdirAll(coversDir, 0o755); err != nil {
		return nil, fmt.Errorf("create covers directory: %w", err)
	}

	var (
		stats    Stats
		items    []Item
		releases = map[int]discogs.Release{}
	)
	stats.Files = len(files)

	for _, file := range files {
		rows, err := ReadRows(file)
		if err != nil {
			return nil, err
		}
		h.logger.Info("export loaded",
			logging.String("file", filepath.Base(file)),
			logging.Int("rows", len(rows)))
		stats.Rows += len(rows)

		for _, row := range rows {
			release, seen := releases[row.ReleaseID]
			if !seen {
				release, err = h.client.GetRelease(ctx, row.ReleaseID)
				if err != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					h.logger.Warn("release fetch failed",
						logging.Int("release_id", row.ReleaseID),
						logging.Error(err))
					stats.FetchErrors++
					release = discogs.Release{}
				} else {
					stats.Fetched++
				}
				releases[row.ReleaseID] = release
			}
			items = append(items, h.buildItem(ctx, row, release, coversDir, &stats))
		}
	}

	sortItems(items)

	if err := fileutil.WriteJSONDocument(filepath.Join(outDir, "gallery.json"), GalleryDocument{Items: items}); err != nil {
		return nil, err
	}
	pagePath := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(pagePath, galleryPage, 0o644); err != nil {
		return nil, fmt.Errorf("write gallery page: %w", err)
	}
	h.logger.Info("gallery written",
		logging.String("path", pagePath),
		logging.Int("items", len(items)),
		logging.Int("downloaded", stats.Downloaded))
	return &Result{Items: items, Stats: stats, GalleryPath: pagePath}, nil
}

// buildItem assembles one gallery entry, preferring release detail
// over the export row and keeping the row values as fallbacks.
func (h *Hunter) buildItem(ctx context.Context, row Row, release discogs.Release, coversDir string, stats *Stats) Item {
	item := Item{
		ReleaseID: row.ReleaseID,
		Artist:    row.Artist,
		Title:     row.Title,
		Year:      row.Year,
	}
	if release.Artist != "" {
		item.Artist = release.Artist
	}
	if release.Title != "" {
		item.Title = release.Title
	}
	if release.Year > 0 {
		item.Year = release.Year
	}
	item.DiscogsURL = release.PageURL
	if item.DiscogsURL == "" {
		item.DiscogsURL = fmt.Sprintf("https://www.discogs.com/release/%d", row.ReleaseID)
	}

	url := ChooseCover(release)
	if url == "" {
		return item
	}
	name := fmt.Sprintf("%d.jpg", row.ReleaseID)
	dest := filepath.Join(coversDir, name)
	if _, err := os.Stat(dest); err != nil {
		data, err := h.client.DownloadImage(ctx, url)
		if err != nil {
			h.logger.Warn("cover download failed",
				logging.Int("release_id", row.ReleaseID),
				logging.Error(err))
			stats.DownloadErrors++
			return item
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			h.logger.Warn("cover write failed", logging.Error(err))
			stats.DownloadErrors++
			return item
		}
		stats.Downloaded++
	}
	item.Image = "covers/" + name
	return item
}

// sortItems orders the gallery year ascending (unknown years last),
// then case-insensitively by artist and title.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		yi, yj := items[i].Year, items[j].Year
		if yi <= 0 {
			yi = 9999
		}
		if yj <= 0 {
			yj = 9999
		}
		if yi != yj {
			return yi < yj
		}
		ai, aj := strings.ToLower(items[i].Artist), strings.ToLower(items[j].Artist)
		if ai != aj {
			return ai < aj
		}
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
}
