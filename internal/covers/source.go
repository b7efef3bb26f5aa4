package covers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"platter/internal/textutil"
)

// idColumns are the header names that may carry a release id, in
// lookup order.
var idColumns = []string{"discogs_id", "release_id", "id", "release"}

// Row is one top-seller export row. Artist, title, and year are kept
// as fallbacks for releases the API cannot resolve.
type Row struct {
	ReleaseID int
	Artist    string
	Title     string
	Year      int
}

// DiscoverTopSellerCSVs lists the *_top_sellers_*.csv exports under
// dir, sorted by name.
func DiscoverTopSellerCSVs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*_top_sellers_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan top-seller exports: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadRows parses one top-seller CSV. Rows without a parseable
// release id are dropped.
func ReadRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for _, record := range records[1:] {
		id := extractReleaseID(record, index)
		if id <= 0 {
			continue
		}
		row := Row{
			ReleaseID: id,
			Artist:    field(record, "artist"),
			Title:     field(record, "title"),
		}
		for _, col := range []string{"year", "release_year"} {
			if year, ok := textutil.ParseYear(field(record, col)); ok {
				row.Year = year
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func extractReleaseID(record []string, index map[string]int) int {
	for _, col := range idColumns {
		i, ok := index[col]
		if !ok || i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		if id, err := strconv.Atoi(value); err == nil {
			return id
		}
	}
	return 0
}
