// Package inventory loads record entries from exported JSON catalogs.
// Exports vary in shape, so each logical attribute is looked up under
// an ordered list of candidate field names.
package inventory
