package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"platter/internal/genre"
)

// Record is one usable catalog entry: a resolved broad genre and an
// on-disk cover image, plus the artist when one was identifiable.
type Record struct {
	Artist     string
	BroadGenre string
	ImagePath  string
}

// Candidate field names per logical attribute, consulted in order.
var (
	genreFields  = []string{"broad_genre", "genre_broad", "genre_group", "genre"}
	imageFields  = []string{"img", "image_path", "cover_image", "image", "cover"}
	artistFields = []string{"artist", "artist_name", "artists"}
)

// Load reads the inventory JSON at path and returns records that have
// a resolvable genre and an image that exists under imagesDir.
// Entries missing either are skipped, never errors.
func Load(path, imagesDir string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse inventory %s: %w", path, err)
	}

	rows := extractRows(doc)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := row.(map[string]any)
		if !ok {
			continue
		}

		broad := resolveGenre(rec)
		if broad == "" {
			continue
		}
		imageRef := firstString(rec, imageFields)
		if imageRef == "" {
			continue
		}
		imagePath := ResolveImagePath(imagesDir, imageRef)
		if _, err := os.Stat(imagePath); err != nil {
			continue
		}

		records = append(records, Record{
			Artist:     extractArtist(rec),
			BroadGenre: broad,
			ImagePath:  imagePath,
		})
	}
	return records, nil
}

// extractRows finds the entry array: a records/items/data key, or the
// document itself when it is already an array.
func extractRows(doc any) []any {
	if m, ok := doc.(map[string]any); ok {
		for _, key := range []string{"records", "items", "data"} {
			if rows, ok := m[key].([]any); ok && len(rows) > 0 {
				return rows
			}
		}
		return nil
	}
	rows, _ := doc.([]any)
	return rows
}

// resolveGenre reads the first populated genre field and collapses it
// to a broad genre. The field value may be a string or a list.
func resolveGenre(rec map[string]any) string {
	for _, field := range genreFields {
		switch v := rec[field].(type) {
		case string:
			if resolved := genre.ResolveBroadString(v); resolved != "" {
				return resolved
			}
		case []any:
			values := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					values = append(values, s)
				}
			}
			if resolved := genre.ResolveBroad(values); resolved != "" {
				return resolved
			}
		}
	}
	return ""
}

// extractArtist reads the first populated artist field; list values
// contribute their first element.
func extractArtist(rec map[string]any) string {
	for _, field := range artistFields {
		switch v := rec[field].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						return trimmed
					}
				}
			}
		}
	}
	return ""
}

func firstString(rec map[string]any, fields []string) string {
	for _, field := range fields {
		if s, ok := rec[field].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// ResolveImagePath resolves a possibly-relative image reference
// against the images root. A leading path component that repeats the
// root's directory name is dropped, so exports referencing
// "images/cover.jpg" resolve correctly when the root is already
// ".../images".
func ResolveImagePath(imagesDir, ref string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return ref
	}
	parts := strings.Split(ref, string(filepath.Separator))
	if len(parts) > 1 && strings.EqualFold(parts[0], filepath.Base(imagesDir)) {
		parts = parts[1:]
	}
	return filepath.Join(append([]string{imagesDir}, parts...)...)
}
