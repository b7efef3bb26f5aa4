// Package textutil provides the text normalization shared by both pipelines.
//
// The primary use cases are:
//   - Building the normalized artist||title grouping key used for store
//     deduplication and override matching
//   - Normalizing genre labels into punctuation-insensitive tokens
//   - Sanitizing bucket names into filesystem-safe slugs
//   - Parsing loosely-formatted year and currency values from CSV exports
//
// Normalization lowercases, collapses whitespace runs, and treats any
// non-alphanumeric character as a separator so that spacing and punctuation
// variants of the same label compare equal.
package textutil
