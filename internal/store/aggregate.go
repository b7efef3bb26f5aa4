package store

import (
	"strconv"
	"strings"
)

// Options tunes aggregation.
type Options struct {
	// SaleFolderPrefix keeps rows whose folder tag starts with this,
	// case-insensitively ("For Sale", "For Sale - LPs", ...).
	SaleFolderPrefix string
	// MinYear drops groups whose resolved year falls below it, when
	// both are known.
	MinYear int
}

// Group is one artist+title grouping under construction: the item
// plus the evidence needed to finish it.
type Group struct {
	Item     Item
	years    []int
	highSold float64
	hasHigh  bool
}

// HighSold returns the best observed historical sale value.
func (g *Group) HighSold() (float64, bool) {
	return g.highSold, g.hasHigh
}

// Aggregation is the result of folding source rows into groups.
type Aggregation struct {
	groups map[string]*Group
	order  []string
	stats  Stats
}

// Groups returns the groups in first-encountered order.
func (a *Aggregation) Groups() []*Group {
	out := make([]*Group, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.groups[key])
	}
	return out
}

// Stats returns the row/group counters accumulated while folding.
func (a *Aggregation) Stats() Stats {
	return a.stats
}

// Aggregate folds rows into one group per normalized artist+title
// key. Only sale-folder rows are kept; rows lacking both artist and
// title, or repeating an already-seen release id, are dropped. Within
// a group the year is the minimum valid year observed, the high-sold
// value the maximum positive one, and optional fields are filled
// first-non-empty-wins.
func Aggregate(rows []Row, opts Options) *Aggregation {
	prefix := strings.ToLower(strings.TrimSpace(opts.SaleFolderPrefix))
	agg := &Aggregation{groups: make(map[string]*Group)}
	seenIDs := make(map[string]bool)

	for _, row := range rows {
		agg.stats.Rows++
		if prefix != "" && !strings.HasPrefix(strings.ToLower(row.Folder), prefix) {
			continue
		}
		id := strings.TrimSpace(row.ReleaseID)
		if id == "" {
			continue
		}
		if seenIDs[id] {
			agg.stats.DupRows++
			continue
		}
		seenIDs[id] = true
		if row.Artist == "" && row.Title == "" {
			continue
		}

		key := GroupKey(row.Artist, row.Title)
		group := agg.groups[key]
		if group == nil {
			group = &Group{Item: Item{
				Key:    key,
				Artist: row.Artist,
				Title:  row.Title,
				Status: StatusAvailable,
			}}
			agg.groups[key] = group
			agg.order = append(agg.order, key)
		}

		group.Item.VariantIDs = append(group.Item.VariantIDs, id)
		if group.Item.ReleaseID == "" {
			group.Item.ReleaseID = id
		}
		if row.Year > 0 {
			group.years = append(group.years, row.Year)
		}
		if row.HasHigh && row.HighSold > 0 && (!group.hasHigh || row.HighSold > group.highSold) {
			group.highSold = row.HighSold
			group.hasHigh = true
		}
		fillIfEmpty(&group.Item.Country, row.Country)
		fillIfEmpty(&group.Item.Label, row.Label)
		fillIfEmpty(&group.Item.CatNo, row.CatNo)
		fillIfEmpty(&group.Item.Format, row.Format)
		fillIfEmpty(&group.Item.Image, row.Image)
	}

	agg.finalize(opts.MinYear)
	return agg
}

// finalize resolves each group's year, decade, and quantity, and
// applies the minimum-year cutoff.
func (a *Aggregation) finalize(minYear int) {
	kept := a.order[:0]
	for _, key := range a.order {
		group := a.groups[key]
		year := minOf(group.years)
		if minYear > 0 && year > 0 && year < minYear {
			delete(a.groups, key)
			continue
		}
		if year > 0 {
			group.Item.Year = strconv.Itoa(year)
		}
		group.Item.Decade = Decade(year)
		group.Item.Qty = len(group.Item.VariantIDs)
		kept = append(kept, key)
	}
	a.order = kept
	a.stats.Groups = len(a.order)
}

func fillIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

func minOf(values []int) int {
	lowest := 0
	for _, v := range values {
		if lowest == 0 || v < lowest {
			lowest = v
		}
	}
	return lowest
}
