package social

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Default sociability range: -1 avoids strangers, +1 seeks them out.
const (
	SociabilityMin = -1.0
	SociabilityMax = 1.0
)

// UniformSociability samples n sociability values uniformly from [lo, hi].
func UniformSociability(n int, lo, hi float64, seed uint64) []float64 {
	if n <= 0 {
		return nil
	}
	dist := distuv.Uniform{
		Min: lo,
		Max: hi,
		Src: rand.NewPCG(seed, seed),
	}
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = dist.Rand()
	}
	return seq
}

// GaussianSociability samples n sociability values from a normal
// distribution, clamped to [lo, hi].
func GaussianSociability(n int, mean, stddev, lo, hi float64, seed uint64) []float64 {
	if n <= 0 {
		return nil
	}
	dist := distuv.Normal{
		Mu:    mean,
		Sigma: stddev,
		Src:   rand.NewPCG(seed, seed),
	}
	seq := make([]float64, n)
	for i := range seq {
		v := dist.Rand()
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		seq[i] = v
	}
	return seq
}
