package store

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"platter/internal/discogs"
	"platter/internal/textutil"
)

// Row is one flat release row from a source, before filtering and
// grouping.
type Row struct {
	Folder    string
	ReleaseID string
	Artist    string
	Title     string
	Year      int // 0 when absent or implausible
	HighSold  float64
	HasHigh   bool
	Country   string
	Label     string
	CatNo     string
	Format    string
	Image     string
}

// highSoldColumns lists the column names a high-sold value may hide
// under, consulted in order. Export versions disagree on the name.
var highSoldColumns = []string{
	"high_sold_value",
	"sold_high",
	"high_sold",
	"sold_value_high",
	"discogs_high_sold_value",
	"highest_sold",
	"high_sold_usd",
}

// imageColumns lists the cover reference column candidates.
var imageColumns = []string{"cover_image", "image", "img"}

// DiscoverRecordsCSVs returns every records.csv under root: the
// legacy flat layout plus per-tab subfolders.
func DiscoverRecordsCSVs(root string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	flat := filepath.Join(root, "records.csv")
	if _, err := os.Stat(flat); err == nil {
		files = append(files, flat)
		seen[flat] = true
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "records.csv" && !seen[path] {
			files = append(files, path)
			seen[path] = true
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return files, nil
		}
		return nil, fmt.Errorf("scan gallery for records.csv: %w", err)
	}
	return files, nil
}

// ReadRecordsCSVs parses one or more records.csv files into rows.
// Files use a header row; unknown columns are ignored.
func ReadRecordsCSVs(paths []string) ([]Row, error) {
	var rows []Row
	for _, path := range paths {
		fileRows, err := readRecordsCSV(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

func readRecordsCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(strings.ToLower(name), "\uFEFF"))] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		row := Row{
			Folder:    field(record, "folder"),
			ReleaseID: field(record, "release_id"),
			Artist:    field(record, "artist"),
			Title:     field(record, "title"),
			Country:   field(record, "country"),
			Label:     field(record, "label"),
			CatNo:     field(record, "catno"),
			Format:    field(record, "format"),
		}
		if year, ok := textutil.ParseYear(field(record, "year")); ok {
			row.Year = year
		}
		for _, col := range highSoldColumns {
			if value, ok := textutil.ParseMoney(field(record, col)); ok {
				row.HighSold = value
				row.HasHigh = true
				break
			}
		}
		for _, col := range imageColumns {
			if value := field(record, col); value != "" {
				row.Image = strings.TrimLeft(value, "/\\")
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowsFromReleases converts collection API releases into source rows,
// all tagged with the originating folder name. yearMap overrides the
// API year per release id when the gallery export knows better.
func RowsFromReleases(releases []discogs.CollectionRelease, folderName string, yearMap map[int]int) []Row {
	rows := make([]Row, 0, len(releases))
	for _, rel := range releases {
		row := Row{
			Folder:    folderName,
			ReleaseID: strconv.Itoa(rel.ID),
			Artist:    rel.Artist,
			Title:     rel.Title,
			Country:   rel.Country,
			Label:     rel.Label,
			CatNo:     rel.CatNo,
			Format:    rel.Format,
		}
		if year, ok := yearMap[rel.ID]; ok {
			row.Year = year
		} else if rel.Year >= 1800 && rel.Year <= 2100 {
			row.Year = rel.Year
		}
		if rel.CoverImage != "" {
			row.Image = rel.CoverImage
		} else {
			row.Image = rel.Thumb
		}
		rows = append(rows, row)
	}
	return rows
}

// LoadYearMap reads release_id -> year from a gallery records.csv,
// preferred over the collection API's year field. A missing file
// yields an empty map.
func LoadYearMap(path string) map[int]int {
	out := make(map[int]int)
	rows, err := readRecordsCSV(path)
	if err != nil {
		return out
	}
	for _, row := range rows {
		if row.Year == 0 {
			continue
		}
		id, err := strconv.Atoi(row.ReleaseID)
		if err != nil {
			continue
		}
		if _, exists := out[id]; !exists {
			out[id] = row.Year
		}
	}
	return out
}
