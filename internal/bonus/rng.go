package bonus

import (
	"math/rand/v2"
	"sync"
)

// RandomSource supplies the chance and quantity draws. IntN returns a value in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the process-wide source. Safe for concurrent use.
func DefaultSource() RandomSource {
	return globalSource{}
}

// SeededSource is a deterministic PCG source for tests and simulation
type SeededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a source that replays the same draws for the same seed
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a value in [0, n)
func (s *SeededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// rollRange returns a uniform value in [lo, hi]
func rollRange(rng RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
