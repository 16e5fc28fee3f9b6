package engine

import (
	"math/rand"
	"time"
)

// Source draws Gaussian noise for one engine instance. Two engines never
// share a Source; draw order across all operations on one engine is the
// reproducibility contract, so every draw mutates the underlying generator.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a fully deterministic source: the same seed always
// yields the same sequence of draws.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// NewEntropySource returns a source seeded from the wall clock. Draws are
// not reproducible across runs.
func NewEntropySource() *Source {
	return NewSource(time.Now().UnixNano())
}

// Normal draws one sample from Normal(mean, stddev). A zero stddev still
// consumes a draw so that call sequences keep identical cursor positions
// regardless of fluidity.
func (s *Source) Normal(mean, stddev float64) float64 {
	return mean + s.rng.NormFloat64()*stddev
}
