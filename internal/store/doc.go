// Package store builds the sellable inventory: it aggregates release
// rows from gallery CSV exports or the Discogs collection API,
// deduplicates them into one item per artist+title, resolves prices
// through the override/median/high-sold/default chain, and emits the
// static store site.
package store
