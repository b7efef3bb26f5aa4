package store

import (
	"os"
	"path/filepath"
	"testing"

	"platter/internal/discogs"
)

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverRecordsCSVs(t *testing.T) {
	root := t.TempDir()
	writeCSV(t, filepath.Join(root, "records.csv"), "folder\n")
	writeCSV(t, filepath.Join(root, "For Sale - LPs", "records.csv"), "folder\n")
	writeCSV(t, filepath.Join(root, "Personal", "records.csv"), "folder\n")

	files, err := DiscoverRecordsCSVs(root)
	if err != nil {
		t.Fatalf("DiscoverRecordsCSVs: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	// Legacy flat file first.
	if files[0] != filepath.Join(root, "records.csv") {
		t.Fatalf("first = %q", files[0])
	}
}

func TestReadRecordsCSVs(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "records.csv")
	writeCSV(t, path, "folder,release_id,artist,title,year,country,label,catno,format,cover_image,high_sold_value\n"+
		"For Sale,123,Nina Simone,Pastel Blues,1965.0,US,Philips,PHM 200-187,\"Vinyl, LP\",images/ns.jpg,$18.50\n"+
		"For Sale,124,Unknown Year,Untitled,not-a-year,,,,,/covers/x.jpg,\n")

	rows, err := ReadRecordsCSVs([]string{path})
	if err != nil {
		t.Fatalf("ReadRecordsCSVs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	first := rows[0]
	if first.ReleaseID != "123" || first.Artist != "Nina Simone" {
		t.Fatalf("first = %+v", first)
	}
	// Excel "1965.0" parses; money strips the currency sign.
	if first.Year != 1965 {
		t.Fatalf("year = %d", first.Year)
	}
	if !first.HasHigh || first.HighSold != 18.5 {
		t.Fatalf("high sold = %v (%v)", first.HighSold, first.HasHigh)
	}
	if first.Image != "images/ns.jpg" {
		t.Fatalf("image = %q", first.Image)
	}
	// Bad year parses to absent; leading slashes trimmed off images.
	if rows[1].Year != 0 || rows[1].Image != "covers/x.jpg" {
		t.Fatalf("second = %+v", rows[1])
	}
}

func TestRowsFromReleases(t *testing.T) {
	releases := []discogs.CollectionRelease{
		{ID: 11, Title: "Blue", Artist: "Joni Mitchell", Year: 1971, Label: "Reprise", CoverImage: "https://img/blue.jpg"},
		{ID: 22, Title: "Odd Year", Artist: "X", Year: 3, Thumb: "https://img/thumb.jpg"},
	}
	yearMap := map[int]int{11: 1970}

	rows := RowsFromReleases(releases, "For Sale", yearMap)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	// Gallery year map beats the API year.
	if rows[0].Year != 1970 || rows[0].Folder != "For Sale" || rows[0].ReleaseID != "11" {
		t.Fatalf("first = %+v", rows[0])
	}
	// Implausible API year treated as absent; thumb used when no cover.
	if rows[1].Year != 0 || rows[1].Image != "https://img/thumb.jpg" {
		t.Fatalf("second = %+v", rows[1])
	}
}

func TestLoadYearMap(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "records.csv")
	writeCSV(t, path, "folder,release_id,artist,title,year\n"+
		"For Sale,11,A,T,1971\n"+
		"For Sale,11,A,T,1980\n"+
		"For Sale,bad,A,T,1990\n"+
		"For Sale,12,B,U,\n")

	yearMap := LoadYearMap(path)
	if len(yearMap) != 1 {
		t.Fatalf("map = %v", yearMap)
	}
	// First entry per id wins.
	if yearMap[11] != 1971 {
		t.Fatalf("year = %d", yearMap[11])
	}

	if got := LoadYearMap(filepath.Join(root, "missing.csv")); len(got) != 0 {
		t.Fatalf("missing file map = %v", got)
	}
}
