package store

import (
	"crypto/md5"
	_ "embed"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"platter/internal/fileutil"
)

//go:embed site/index.html
var storefrontHTML []byte

// InventoryDocument is the JSON document the storefront reads.
type InventoryDocument struct {
	Items []Item `json:"items"`
}

// SortItems orders items by artist then title, case-insensitively.
func SortItems(items []Item) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		if cmp := c.CompareString(items[i].Artist, items[j].Artist); cmp != 0 {
			return cmp < 0
		}
		return c.CompareString(items[i].Title, items[j].Title) < 0
	})
}

// WriteInventory sorts the items, backs up any previous inventory
// document, and writes the new one. It returns the backup path, ""
// when there was nothing to back up.
func WriteInventory(path string, items []Item) (string, error) {
	SortItems(items)
	backup, err := fileutil.BackupTimestamped(path, time.Now())
	if err != nil {
		return "", fmt.Errorf("back up inventory: %w", err)
	}
	if err := fileutil.WriteJSONDocument(path, InventoryDocument{Items: items}); err != nil {
		return "", fmt.Errorf("write inventory: %w", err)
	}
	return backup, nil
}

// WriteStorefront writes the embedded storefront page into siteDir.
func WriteStorefront(siteDir string) error {
	if err := os.MkdirAll(siteDir, 0o755); err != nil {
		return fmt.Errorf("create site directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(siteDir, "index.html"), storefrontHTML, 0o644); err != nil {
		return fmt.Errorf("write storefront: %w", err)
	}
	return nil
}

// CopySiteImages copies each item's referenced image from srcDir into
// siteDir/images and rewrites the reference to the site-relative
// path. Items whose source image is missing keep their reference
// untouched.
func CopySiteImages(items []Item, srcDir, siteDir string) (int, error) {
	dstDir := filepath.Join(siteDir, "images")
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return 0, fmt.Errorf("create site images directory: %w", err)
	}
	copied := 0
	for i := range items {
		ref := strings.TrimSpace(items[i].Image)
		if ref == "" || strings.Contains(ref, "://") {
			continue
		}
		name := filepath.Base(filepath.FromSlash(ref))
		src := filepath.Join(srcDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := fileutil.CopyFile(src, filepath.Join(dstDir, name)); err != nil {
			return copied, fmt.Errorf("copy image %s: %w", name, err)
		}
		items[i].Image = "images/" + name
		copied++
	}
	return copied, nil
}

// ImageFileName derives a stable local file name for a remote cover
// URL: a 16-hex-digit digest plus the URL's extension.
func ImageFileName(coverURL string) string {
	sum := md5.Sum([]byte(coverURL))
	ext := ".jpeg"
	if parsed, err := url.Parse(coverURL); err == nil {
		if e := strings.ToLower(path.Ext(parsed.Path)); e == ".jpg" || e == ".jpeg" || e == ".png" || e == ".webp" {
			ext = e
		}
	}
	return hex.EncodeToString(sum[:8]) + ext
}
