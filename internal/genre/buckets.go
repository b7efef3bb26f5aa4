package genre

// Buckets maps final genre labels to ordered cover image lists. Label
// order and cover order both follow insertion order.
type Buckets struct {
	labels []string
	covers map[string][]string
}

// NewBuckets returns an empty bucket collection.
func NewBuckets() *Buckets {
	return &Buckets{covers: make(map[string][]string)}
}

// Add appends a cover to the named bucket, creating it on first use.
func (b *Buckets) Add(label, cover string) {
	if _, ok := b.covers[label]; !ok {
		b.labels = append(b.labels, label)
	}
	b.covers[label] = append(b.covers[label], cover)
}

// Labels returns bucket labels in insertion order.
func (b *Buckets) Labels() []string {
	return b.labels
}

// Covers returns the cover list for a label, nil when absent.
func (b *Buckets) Covers(label string) []string {
	return b.covers[label]
}

// Len reports the number of buckets.
func (b *Buckets) Len() int {
	return len(b.labels)
}

// SplitComposite replaces every composite folk/world/country bucket
// with two buckets: Folk_World takes the first max(1, floor(2n/3))
// covers and Country the remainder. Multiple composite buckets
// accumulate into the same two targets. Other buckets pass through in
// order.
func (b *Buckets) SplitComposite() *Buckets {
	out := NewBuckets()
	for _, label := range b.labels {
		covers := b.covers[label]
		if !IsComposite(label) {
			for _, c := range covers {
				out.Add(label, c)
			}
			continue
		}
		cut := 2 * len(covers) / 3
		if cut < 1 {
			cut = 1
		}
		for _, c := range covers[:cut] {
			out.Add(FolkWorldLabel, c)
		}
		for _, c := range covers[cut:] {
			out.Add(CountryLabel, c)
		}
	}
	return out
}

// MergeTiny moves every bucket smaller than minSize into Misc. The
// merge is a single pass over the existing buckets: a Misc bucket
// produced here is never re-evaluated, so it survives even when its
// total stays under the threshold.
func (b *Buckets) MergeTiny(minSize int) *Buckets {
	out := NewBuckets()
	var misc []string
	for _, label := range b.labels {
		covers := b.covers[label]
		if len(covers) < minSize {
			misc = append(misc, covers...)
			continue
		}
		for _, c := range covers {
			out.Add(label, c)
		}
	}
	for _, c := range misc {
		out.Add(MiscLabel, c)
	}
	return out
}
