package genre

import (
	"strings"

	"platter/internal/textutil"
)

// compositeKey is the normalized form of the one composite tag that
// gets special split treatment downstream.
const compositeKey = "folk_world_country"

// Bucket labels produced by the composite splitter and tiny-bucket
// merger.
const (
	FolkWorldLabel = "Folk_World"
	CountryLabel   = "Country"
	MiscLabel      = "Misc"
)

// compoundSeparators mark a single-string tag as multi-valued.
const compoundSeparators = ",/&;|"

// ResolveBroad collapses a multi-valued genre tag to one broad genre.
// It returns "" when no usable value remains.
//
// Priority for compound tags: any value containing "pop" wins as
// "Pop"; otherwise a folk value alongside a country value wins as
// "Country"; otherwise the first non-empty value stands.
func ResolveBroad(values []string) string {
	kept := values[:0:0]
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	}
	if label, ok := applyPriority(kept); ok {
		return label
	}
	return kept[0]
}

// ResolveBroadString handles the single-string form of the tag. A
// string containing any compound separator is tested against the same
// priority rules; otherwise the trimmed string passes through.
func ResolveBroadString(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.ContainsAny(trimmed, compoundSeparators) {
		if label, ok := applyPriority([]string{trimmed}); ok {
			return label
		}
	}
	return trimmed
}

// applyPriority runs the Pop-then-Folk+Country substring tests over
// the candidate values.
func applyPriority(values []string) (string, bool) {
	var hasFolk, hasCountry bool
	for _, v := range values {
		lower := strings.ToLower(v)
		if strings.Contains(lower, "pop") {
			return "Pop", true
		}
		if strings.Contains(lower, "folk") {
			hasFolk = true
		}
		if strings.Contains(lower, "country") {
			hasCountry = true
		}
	}
	if hasFolk && hasCountry {
		return "Country", true
	}
	return "", false
}

// IsComposite reports whether a bucket label is the composite
// folk/world/country tag, tolerant of punctuation and spacing
// variants.
func IsComposite(label string) bool {
	return textutil.NormalizeToken(label) == compositeKey
}
