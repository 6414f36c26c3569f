package scatter

import (
	"math"
	"math/rand/v2"
)

// Source yields uniformly distributed floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// globalSource draws from the goroutine-safe top-level generator.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a reproducible source. It is not safe for
// concurrent use.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

type draw struct{ src Source }

func (d draw) unit() float64 {
	u := d.src.Float64()
	return min(max(u, 0), math.Nextafter(1, 0))
}

// between returns a float in [lo, hi).
func (d draw) between(lo, hi float64) float64 {
	return d.unit()*(hi-lo) + lo
}

// intRange returns an integer in [lo, hi], both inclusive.
func (d draw) intRange(lo, hi int) int {
	return int(math.Floor(d.between(float64(lo), float64(hi+1))))
}

// index returns an integer in [0, n).
func (d draw) index(n int) int {
	return min(int(d.unit()*float64(n)), n-1)
}

func (d draw) chance(p float64) bool {
	return d.unit() < p
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
