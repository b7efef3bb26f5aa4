package textutil

import (
	"strconv"
	"strings"
	"unicode"
)

// CollapseWhitespace trims the string and collapses interior whitespace runs
// to single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// GroupKey builds the normalized artist||title grouping key: both parts are
// lowercased and whitespace-collapsed so case and spacing variants of the
// same listing collapse into one group.
func GroupKey(artist, title string) string {
	return normalizePart(artist) + "||" + normalizePart(title)
}

func normalizePart(value string) string {
	return strings.ToLower(CollapseWhitespace(value))
}

// NormalizeToken lowercases a label, treats every non-alphanumeric rune as a
// separator, and joins the surviving tokens with underscores. Punctuation and
// spacing variants of the same label normalize identically, e.g.
// "Folk, World, & Country" and "Folk/World/Country" both become
// "folk_world_country".
func NormalizeToken(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// SafeSlug converts a bucket or file name component into a filesystem-safe
// slug. Alphanumerics, hyphens, and underscores pass through; everything else
// becomes an underscore. Returns "Unknown" when nothing survives.
func SafeSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "Unknown"
	}
	return out
}

// ParseYear parses a year from a CSV cell, tolerating spreadsheet float
// formatting ("1961.0"). Years outside 1800..2100 are rejected as data
// errors rather than trusted.
func ParseYear(value string) (int, bool) {
	s := strings.TrimSpace(value)
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1800 || year > 2100 {
		return 0, false
	}
	return year, true
}

// ParseMoney parses a currency string by stripping everything except digits,
// '.', and '-'. Non-numeric or non-positive values report absence rather
// than a zero price.
func ParseMoney(value string) (float64, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}
