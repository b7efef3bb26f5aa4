package grid

import "math/rand"

// Padder fills a cover batch up to the cell count of the square grid.
type Padder interface {
	Pad(covers []string, need int) []string
}

// RandomPadder repeats covers chosen at random, with replacement.
type RandomPadder struct {
	rng *rand.Rand
}

// NewRandomPadder builds a random padder. A zero seed randomizes per
// run.
func NewRandomPadder(seed int64) *RandomPadder {
	src := rand.NewSource(seed)
	if seed == 0 {
		src = rand.NewSource(rand.Int63())
	}
	return &RandomPadder{rng: rand.New(src)}
}

func (p *RandomPadder) Pad(covers []string, need int) []string {
	batch := append([]string(nil), covers...)
	for len(batch) < need {
		batch = append(batch, covers[p.rng.Intn(len(covers))])
	}
	return batch
}

// RepeatFirstPadder repeats the first cover, keeping renders stable
// without a seed.
type RepeatFirstPadder struct{}

func (RepeatFirstPadder) Pad(covers []string, need int) []string {
	batch := append([]string(nil), covers...)
	for len(batch) < need {
		batch = append(batch, covers[0])
	}
	return batch
}
