package store

import (
	"fmt"
	"strings"
	"time"

	"platter/internal/fileutil"
)

const appliedMarker = "PRICE_APPLIED_FROM_OVERRIDES"

// ApplyResult reports what an ApplyPrices run changed.
type ApplyResult struct {
	Matched    int
	Updated    int
	BackupPath string
}

// sheetPrice is one priced row loaded from the sheet, keyed by its
// variant id list.
type sheetPrice struct {
	Price string
	Notes string
}

// loadSheetPrices reads rows from a price sheet that carry a price,
// keyed by the variant_release_ids column.
func loadSheetPrices(path string) (map[string]sheetPrice, error) {
	rows, err := readSheetRows(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]sheetPrice)
	for _, row := range rows {
		if row.variantIDs == "" || row.override.Price == "" {
			continue
		}
		out[row.variantIDs] = sheetPrice{Price: row.override.Price, Notes: row.override.Notes}
	}
	return out, nil
}

// ApplyPrices patches an existing inventory document with prices from
// the sheet at sheetPath, matching items by their variant id list and
// falling back to the first release id. A timestamped backup is
// written before the inventory is overwritten. Changed items get a
// marker appended to their notes.
func ApplyPrices(sheetPath, inventoryPath string) (ApplyResult, error) {
	prices, err := loadSheetPrices(sheetPath)
	if err != nil {
		return ApplyResult{}, err
	}

	var doc InventoryDocument
	if err := fileutil.ReadJSONDocument(inventoryPath, &doc); err != nil {
		return ApplyResult{}, fmt.Errorf("read inventory: %w", err)
	}

	backup, err := fileutil.BackupTimestamped(inventoryPath, time.Now())
	if err != nil {
		return ApplyResult{}, fmt.Errorf("back up inventory: %w", err)
	}

	result := ApplyResult{BackupPath: backup}
	for i := range doc.Items {
		item := &doc.Items[i]
		matchKey := strings.Join(item.VariantIDs, " ")
		if matchKey == "" {
			matchKey = item.ReleaseID
		}
		if matchKey == "" {
			continue
		}
		price, ok := prices[matchKey]
		if !ok {
			continue
		}
		result.Matched++
		if price.Price == "" || price.Price == item.Price {
			continue
		}
		item.Price = price.Price
		if !strings.Contains(item.Notes, appliedMarker) {
			if item.Notes == "" {
				item.Notes = appliedMarker
			} else {
				item.Notes = item.Notes + " | " + appliedMarker
			}
		}
		result.Updated++
	}

	if err := fileutil.WriteJSONDocument(inventoryPath, doc); err != nil {
		return ApplyResult{}, fmt.Errorf("write inventory: %w", err)
	}
	return result, nil
}
