package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Override is one hand-maintained pricing row. Non-empty fields win
// over computed values unconditionally.
type Override struct {
	Price           string
	Status          string
	Condition       string
	SleeveCondition string
	Notes           string
}

// priceSheetHeader is the column layout of pricing_overrides.csv and
// exported price sheets.
var priceSheetHeader = []string{
	"key", "artist", "title", "year", "qty", "variant_release_ids",
	"price", "status", "condition", "sleeve_condition", "notes",
}

// sheetRow is one parsed override/sheet CSV row.
type sheetRow struct {
	key        string
	variantIDs string
	override   Override
}

// readSheetRows parses an override or price sheet CSV. A missing file
// yields no rows.
func readSheetRows(path string) ([]sheetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, nil
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

	var rows []sheetRow
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		rows = append(rows, sheetRow{
			key:        field(record, "key"),
			variantIDs: field(record, "variant_release_ids"),
			override: Override{
				Price:           field(record, "price"),
				Status:          field(record, "status"),
				Condition:       field(record, "condition"),
				SleeveCondition: field(record, "sleeve_condition"),
				Notes:           field(record, "notes"),
			},
		})
	}
	return rows, nil
}

// LoadOverrides reads the override CSV keyed by normalized
// artist||title. A missing file yields an empty map.
func LoadOverrides(path string) (map[string]Override, error) {
	rows, err := readSheetRows(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Override)
	for _, row := range rows {
		if row.key == "" {
			continue
		}
		out[row.key] = row.override
	}
	return out, nil
}

// ApplyOverride copies every non-empty override field onto the item.
func ApplyOverride(item *Item, ov Override) {
	if ov.Price != "" {
		item.Price = ov.Price
	}
	if ov.Status != "" {
		item.Status = ov.Status
	}
	if ov.Condition != "" {
		item.Condition = ov.Condition
	}
	if ov.SleeveCondition != "" {
		item.SleeveCondition = ov.SleeveCondition
	}
	if ov.Notes != "" {
		item.Notes = ov.Notes
	}
}

// ExportPriceSheet writes a price sheet CSV for the given items,
// carrying over any fields already present in an existing sheet at
// path so hand edits survive re-export. Items are expected to arrive
// sorted.
func ExportPriceSheet(path string, items []Item) (int, error) {
	existing, err := LoadOverrides(path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create sheet directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create price sheet: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(priceSheetHeader); err != nil {
		return 0, fmt.Errorf("write sheet header: %w", err)
	}
	for _, item := range items {
		// The sheet is an override input: computed prices and
		// statuses stay blank so only deliberate edits carry weight.
		row := item
		row.Price = ""
		row.Status = ""
		row.Condition = ""
		row.SleeveCondition = ""
		row.Notes = ""
		if prev, ok := existing[item.Key]; ok {
			ApplyOverride(&row, prev)
		}
		record := []string{
			row.Key, row.Artist, row.Title, row.Year,
			fmt.Sprint(row.Qty), strings.Join(row.VariantIDs, " "),
			row.Price, row.Status, row.Condition, row.SleeveCondition, row.Notes,
		}
		if err := writer.Write(record); err != nil {
			return 0, fmt.Errorf("write sheet row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush price sheet: %w", err)
	}
	return len(items), nil
}
