package odds

import (
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

// RandomSource yields one uniform value in [0, 1) per call.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // fairness, not unpredictability
}

// NewRandomSource returns a source backed by the runtime's goroutine-safe generator.
func NewRandomSource() RandomSource {
	return globalSource{}
}

type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a reproducible source, safe for concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// RollPlaces is the precision a roll is kept at, matching the audit column.
const RollPlaces = 10

// RollIn scales one draw from src onto [0, total).
func RollIn(src RandomSource, total decimal.Decimal) decimal.Decimal {
	u := src.Float64()
	if u < 0 {
		u = 0
	}
	roll := decimal.NewFromFloat(u).Mul(total).Truncate(RollPlaces)
	if roll.GreaterThanOrEqual(total) {
		roll = total.Sub(decimal.New(1, -RollPlaces))
	}
	return roll
}
