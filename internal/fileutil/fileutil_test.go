package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestBackupTimestamped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	if err := os.WriteFile(path, []byte(`{"items":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 1, 15, 9, 30, 1, 0, time.UTC)
	backup, err := BackupTimestamped(path, now)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "inventory_backup_20260115-093001.json")
	if backup != want {
		t.Fatalf("backup path = %q, want %q", backup, want)
	}

	got, err := os.ReadFile(backup)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"items":[]}` {
		t.Fatalf("backup content mismatch: %q", got)
	}
}

func TestBackupTimestampedMissingSource(t *testing.T) {
	backup, err := BackupTimestamped(filepath.Join(t.TempDir(), "absent.json"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backup != "" {
		t.Fatalf("expected empty backup path, got %q", backup)
	}
}

func TestWriteJSONDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "doc.json")

	in := map[string]any{"items": []string{"a", "b"}}
	if err := WriteJSONDocument(path, in); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"items"`) {
		t.Fatalf("document missing items key: %s", raw)
	}

	var out map[string][]string
	if err := ReadJSONDocument(path, &out); err != nil {
		t.Fatal(err)
	}
	if len(out["items"]) != 2 {
		t.Fatalf("round trip lost data: %v", out)
	}
}

func TestWriteJSONDocumentNoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := WriteJSONDocument(path, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the document, found %d entries", len(entries))
	}
}
