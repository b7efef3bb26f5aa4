package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"platter/internal/fileutil"
	"platter/internal/store"
)

func writeRecordsCSV(t *testing.T, env *cliTestEnv) {
	t.Helper()
	csv := "folder,release_id,artist,title,year,high_sold_value\n" +
		"For Sale,1,Alpha,First,1970,12.2\n" +
		"For Sale,2,Beta,Second,1980,\n" +
		"Keep,3,Gamma,Third,1990,\n"
	if err := os.WriteFile(filepath.Join(env.galleryDir, "records.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreBuildCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	writeRecordsCSV(t, env)

	out, _, err := runCLI(t, env.configPath, "store", "build")
	if err != nil {
		t.Fatalf("store build: %v", err)
	}
	if !strings.Contains(out, "Items") || !strings.Contains(out, "inventory.json") {
		t.Fatalf("unexpected summary: %s", out)
	}

	var doc store.InventoryDocument
	invPath := filepath.Join(env.outputDir, "store", "inventory.json")
	if err := fileutil.ReadJSONDocument(invPath, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items = %+v", doc.Items)
	}
	// High-sold 12.2 rounds to 12; no signal falls to the default 9.
	if doc.Items[0].Price != "12" || doc.Items[1].Price != "9" {
		t.Fatalf("prices = %q, %q", doc.Items[0].Price, doc.Items[1].Price)
	}
}

func TestStoreExportSheetAndApplyPrices(t *testing.T) {
	env := setupCLITestEnv(t)
	writeRecordsCSV(t, env)

	out, _, err := runCLI(t, env.configPath, "store", "export-sheet")
	if err != nil {
		t.Fatalf("export-sheet: %v", err)
	}
	if !strings.Contains(out, "Wrote 2 rows") {
		t.Fatalf("unexpected output: %s", out)
	}
	sheetPath := filepath.Join(env.dataDir, "price_sheet.csv")
	sheet, err := os.ReadFile(sheetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sheet), "alpha||first") {
		t.Fatalf("sheet missing key: %s", sheet)
	}

	if _, _, err := runCLI(t, env.configPath, "store", "build"); err != nil {
		t.Fatalf("store build: %v", err)
	}

	// Hand-edit the sheet with a price for Alpha, then apply it.
	edited := strings.Replace(string(sheet),
		"alpha||first,Alpha,First,1970,1,1,,,,,",
		"alpha||first,Alpha,First,1970,1,1,33,,,,", 1)
	if edited == string(sheet) {
		t.Fatalf("sheet row not found for edit: %s", sheet)
	}
	if err := os.WriteFile(sheetPath, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err = runCLI(t, env.configPath, "store", "apply-prices")
	if err != nil {
		t.Fatalf("apply-prices: %v", err)
	}
	if !strings.Contains(out, "Matched 1 items, updated 1") {
		t.Fatalf("unexpected output: %s", out)
	}

	var doc store.InventoryDocument
	invPath := filepath.Join(env.outputDir, "store", "inventory.json")
	if err := fileutil.ReadJSONDocument(invPath, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Price != "33" {
		t.Fatalf("price = %q", doc.Items[0].Price)
	}
	if !strings.Contains(doc.Items[0].Notes, "PRICE_APPLIED_FROM_OVERRIDES") {
		t.Fatalf("notes = %q", doc.Items[0].Notes)
	}
}

func TestStoreSyncRequiresCredentials(t *testing.T) {
	t.Setenv("DISCOGS_TOKEN", "")
	t.Setenv("DISCOGS_USERNAME", "")
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "store", "sync"); err == nil {
		t.Fatal("expected error without discogs credentials")
	}
}
