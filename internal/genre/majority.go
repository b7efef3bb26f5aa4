package genre

// Assignment pairs an entry's artist with its current broad genre.
// Entries without an artist keep their genre through majority
// aggregation.
type Assignment struct {
	Artist string
	Broad  string
}

// ApplyArtistMajority rewrites every assignment with a known artist to
// that artist's most common broad genre, computed over all of the
// artist's entries. Ties go to the genre encountered first in source
// order. The input slice is modified in place and returned.
func ApplyArtistMajority(entries []Assignment) []Assignment {
	type tally struct {
		counts map[string]int
		order  []string
	}
	byArtist := make(map[string]*tally)
	for _, e := range entries {
		if e.Artist == "" || e.Broad == "" {
			continue
		}
		t := byArtist[e.Artist]
		if t == nil {
			t = &tally{counts: make(map[string]int)}
			byArtist[e.Artist] = t
		}
		if _, seen := t.counts[e.Broad]; !seen {
			t.order = append(t.order, e.Broad)
		}
		t.counts[e.Broad]++
	}

	majority := make(map[string]string, len(byArtist))
	for artist, t := range byArtist {
		best := ""
		bestCount := 0
		for _, g := range t.order {
			if t.counts[g] > bestCount {
				best = g
				bestCount = t.counts[g]
			}
		}
		majority[artist] = best
	}

	for i := range entries {
		if entries[i].Artist == "" || entries[i].Broad == "" {
			continue
		}
		entries[i].Broad = majority[entries[i].Artist]
	}
	return entries
}
