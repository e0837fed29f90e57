package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// DemandSampler generates non-negative integer demand shocks. Shocks are
// i.i.d.: no serial correlation within a path, no correlation across paths.
type DemandSampler interface {
	// Sample returns one demand shock (>= 0).
	Sample(rng *rand.Rand) int
	// Fill overwrites dst with len(dst) independent shocks, consuming them
	// from rng in index order.
	Fill(rng *rand.Rand, dst []int)
}

// GeometricSampler draws the number of Bernoulli(p) failures before the
// first success, so the support is {0, 1, 2, ...}.
type GeometricSampler struct {
	p    float64
	logQ float64 // ln(1-p), cached; 0 means p == 1
}

// NewGeometricSampler creates a sampler with success probability p.
// p must be in (0, 1]; with p == 1 every draw is 0.
func NewGeometricSampler(p float64) (*GeometricSampler, error) {
	if !(p > 0 && p <= 1) {
		return nil, fmt.Errorf("geometric success probability must be in (0, 1], got %v", p)
	}
	s := &GeometricSampler{p: p}
	if p < 1 {
		s.logQ = math.Log1p(-p)
	}
	return s, nil
}

func (s *GeometricSampler) Sample(rng *rand.Rand) int {
	if s.logQ == 0 {
		// p == 1: the first trial always succeeds.
		return 0
	}
	// Inverse CDF: floor(ln(1-U) / ln(1-p)) with U in [0, 1).
	u := rng.Float64()
	val := math.Floor(math.Log1p(-u) / s.logQ)
	// Guard against overflow from u values within one ulp of 1
	if val > math.MaxInt32 || math.IsNaN(val) {
		return math.MaxInt32
	}
	return int(val)
}

func (s *GeometricSampler) Fill(rng *rand.Rand, dst []int) {
	for i := range dst {
		dst[i] = s.Sample(rng)
	}
}

// P returns the configured success probability.
func (s *GeometricSampler) P() float64 {
	return s.p
}
