package market

import (
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

// randSource hands out independent child generators. Children are split
// off under the lock so concurrent branches never share a generator.
type randSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// newRandSource seeds a PCG generator; seed 0 draws a random seed.
func newRandSource(seed uint64) *randSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *randSource) child() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewPCG(s.r.Uint64(), s.r.Uint64()))
}

// round2 rounds half away from zero to two decimals.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
