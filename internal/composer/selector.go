package composer

import (
	"math/rand/v2"
	"time"
)

// Selector picks an index in [0, n). Injected so tests can assert exact output.
type Selector interface {
	Intn(n int) int
}

// First always picks the first candidate.
type First struct{}

// Intn implements Selector.
func (First) Intn(int) int { return 0 }

type seeded struct {
	r *rand.Rand
}

// NewSeededSelector returns a PCG-backed selector; seed 0 derives one from the clock.
func NewSeededSelector(seed uint64) Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seeded) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}

func pick[T any](s Selector, xs []T) (T, bool) {
	var zero T
	if len(xs) == 0 {
		return zero, false
	}
	i := s.Intn(len(xs))
	if i < 0 || i >= len(xs) {
		i = 0
	}
	return xs[i], true
}
