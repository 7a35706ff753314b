package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// glcm builds the normalized 2-level co-occurrence matrix of horizontal
// seat pairs at distance 1 (pairs of adjacent seats within a physical
// row). p[a][b] is the frequency of an a-occupied seat followed by a
// b-occupied seat.
func glcm(state *mat.Dense) [2][2]float64 {
	rows, cols := state.Dims()
	var counts [2][2]float64
	total := 0.0
	for j := 0; j < cols; j++ {
		for i := 0; i+1 < rows; i++ {
			a := int(state.At(i, j))
			b := int(state.At(i+1, j))
			counts[a][b]++
			total++
		}
	}
	if total == 0 {
		return counts
	}
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			counts[a][b] /= total
		}
	}
	return counts
}

// Homogeneity measures how concentrated the co-occurrence matrix is on its
// diagonal: 1 when every adjacent pair agrees (solid blocks of seated or
// empty), lower for checkerboard-like seating.
func Homogeneity(state *mat.Dense) float64 {
	p := glcm(state)
	h := 0.0
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			h += p[a][b] / (1 + float64((a-b)*(a-b)))
		}
	}
	return h
}

// Correlation is the Pearson correlation of adjacent seat occupancies
// under the co-occurrence distribution. Degenerate states (all seats equal)
// have zero variance and return 1.
func Correlation(state *mat.Dense) float64 {
	p := glcm(state)

	var muA, muB float64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			muA += float64(a) * p[a][b]
			muB += float64(b) * p[a][b]
		}
	}
	var varA, varB, cov float64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			varA += (float64(a) - muA) * (float64(a) - muA) * p[a][b]
			varB += (float64(b) - muB) * (float64(b) - muB) * p[a][b]
			cov += (float64(a) - muA) * (float64(b) - muB) * p[a][b]
		}
	}
	if varA == 0 || varB == 0 {
		return 1
	}
	return cov / math.Sqrt(varA*varB)
}

// RunLengthNonuniformity measures how unevenly group lengths are
// distributed: the sum of squared run-length counts over the total count.
// Large values mean a few group lengths dominate.
func RunLengthNonuniformity(state *mat.Dense, blocks []int) float64 {
	return runLengthFeature(state, blocks, func(length int, count float64) float64 {
		return count * count
	})
}

// LongRunEmphasis weights each group by the square of its length,
// emphasizing long contiguous groups of seated occupants.
func LongRunEmphasis(state *mat.Dense, blocks []int) float64 {
	return runLengthFeature(state, blocks, func(length int, count float64) float64 {
		return count * float64(length*length)
	})
}

func runLengthFeature(state *mat.Dense, blocks []int, weight func(int, float64) float64) float64 {
	runLengths := ClusterCounts(state, blocks)
	numRuns := 0.0
	weighted := 0.0
	for length, count := range runLengths {
		numRuns += count
		weighted += weight(length, count)
	}
	if numRuns == 0 {
		return 0
	}
	return weighted / numRuns
}
