// Package analysis computes seating-profile measures over exported
// occupancy snapshots. The profiles characterize the spatial structure of
// a seating distribution so that two runs (or a run and an observation)
// can be compared numerically.
//
// All functions take the aisle-stripped binary state exported by the
// simulator: row index = seat column (x), column index = seat row (y).
package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ClusterCounts histograms the lengths of contiguous horizontal groups of
// occupied seats. An aisle ends a group, so each physical seat row is
// scanned block by block; blocks is the layout's block specification.
// Element i counts groups of exactly i seated occupants; element 0 is
// always zero. The histogram length is seatColumns+1.
func ClusterCounts(state *mat.Dense, blocks []int) []float64 {
	rows, cols := state.Dims()
	counts := make([]float64, rows+1)

	// Stripped block boundaries: block b starts where the previous ends.
	boundary := make(map[int]bool, len(blocks))
	edge := 0
	for _, b := range blocks[:len(blocks)-1] {
		edge += b
		boundary[edge] = true
	}

	for j := 0; j < cols; j++ {
		run := 0
		for i := 0; i < rows; i++ {
			if boundary[i] {
				counts[run]++
				run = 0
			}
			if state.At(i, j) == 1 {
				run++
			} else {
				counts[run]++
				run = 0
			}
		}
		counts[run]++
	}

	// Zero-length "groups" carry no meaning.
	counts[0] = 0
	return counts
}

// lbpDeltas traverses the 8 neighbors of a seat in a fixed circular order
// to build the binary pattern value.
var lbpDeltas = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
	{1, 1}, {1, 0}, {1, -1}, {0, -1},
}

// LBPCounts histograms the local binary pattern of every interior seat:
// the 8 surrounding occupancy bits read in a fixed circular order form a
// value in [0,255]. Captures fine-grained spatial structure and is
// comparable across venues of different size.
func LBPCounts(state *mat.Dense) []float64 {
	rows, cols := state.Dims()
	counts := make([]float64, 256)

	for i := 1; i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			pattern := 0
			for k, d := range lbpDeltas {
				if state.At(i+d[0], j+d[1]) == 1 {
					pattern |= 1 << k
				}
			}
			counts[pattern]++
		}
	}
	return counts
}

// EntropyProfile slides a k-by-k mean window over the state for every k
// from 1 to the shorter side length and records the Shannon entropy (base
// 2) of the resulting value distribution. The profile is invariant to
// reflection and translation and captures structure at every scale.
func EntropyProfile(state *mat.Dense) []float64 {
	rows, cols := state.Dims()
	n := rows
	if cols < n {
		n = cols
	}

	entropies := make([]float64, 0, n)
	for k := 1; k <= n; k++ {
		// The window mean is windowSum/k², so the distribution over means
		// equals the distribution over integer window sums.
		sums := make(map[int]int)
		total := 0
		for r := 0; r+k <= rows; r++ {
			for c := 0; c+k <= cols; c++ {
				s := 0
				for i := 0; i < k; i++ {
					for j := 0; j < k; j++ {
						if state.At(r+i, c+j) == 1 {
							s++
						}
					}
				}
				sums[s]++
				total++
			}
		}

		dist := make([]float64, 0, len(sums))
		for _, c := range sums {
			dist = append(dist, float64(c)/float64(total))
		}
		entropies = append(entropies, stat.Entropy(dist)/math.Ln2)
	}
	return entropies
}

// MSE returns the mean square error between two profiles, compared up to
// the shorter length.
func MSE(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(n)
}
