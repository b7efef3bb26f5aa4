package store

import (
	"fmt"

	"platter/internal/textutil"
)

// Status values an item can carry.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
	StatusHold      = "hold"
)

// Item is one deduplicated artist+title listing in the inventory
// document. Field names match the schema the storefront page reads.
type Item struct {
	Key             string   `json:"key"`
	Artist          string   `json:"artist"`
	Title           string   `json:"title"`
	Year            string   `json:"year,omitempty"`
	Decade          string   `json:"decade"`
	Country         string   `json:"country,omitempty"`
	Label           string   `json:"label,omitempty"`
	CatNo           string   `json:"catno,omitempty"`
	Format          string   `json:"format,omitempty"`
	ReleaseID       string   `json:"rid"`
	VariantIDs      []string `json:"variant_release_ids,omitempty"`
	Qty             int      `json:"qty"`
	Image           string   `json:"img,omitempty"`
	Price           string   `json:"price"`
	Status          string   `json:"status"`
	Condition       string   `json:"condition,omitempty"`
	SleeveCondition string   `json:"sleeve_condition,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// GroupKey returns the normalized deduplication key for an item.
func GroupKey(artist, title string) string {
	return textutil.GroupKey(artist, title)
}

// Decade renders a year as its display decade, "Unknown" when the
// year is absent.
func Decade(year int) string {
	if year <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%ds", (year/10)*10)
}
