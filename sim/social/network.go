package social

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// DefaultEdgeProbability is the Erdős–Rényi edge probability used when a
// population gets a random social network without further configuration.
const DefaultEdgeProbability = 0.2

// ErdosRenyi builds a random tie matrix of order n: every pair is tied
// with strength 1 with probability p, independently. The result is
// symmetric with a zero diagonal. Returns nil for n <= 0.
func ErdosRenyi(n int, p float64, seed uint64) *mat.SymDense {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	return adjacencyMatrix(g, n)
}

// FromDegreeSequence builds a tie matrix whose degree distribution
// approximates the given target sequence, via the configuration model:
// each node gets as many edge stubs as its target degree, stubs are
// shuffled and paired, and pairings that would form self-loops or repeat
// an existing tie are discarded. The degree total must be even.
func FromDegreeSequence(degrees []int, seed uint64) (*mat.SymDense, error) {
	n := len(degrees)
	if n == 0 {
		return nil, fmt.Errorf("empty degree sequence")
	}

	var stubs []int64
	for i, d := range degrees {
		if d < 0 {
			return nil, fmt.Errorf("negative degree %d for node %d", d, i)
		}
		if d >= n {
			return nil, fmt.Errorf("degree %d for node %d exceeds population %d", d, i, n)
		}
		for k := 0; k < d; k++ {
			stubs = append(stubs, int64(i))
		}
	}
	if len(stubs)%2 != 0 {
		return nil, fmt.Errorf("degree sequence sums to odd total %d", len(stubs))
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(stubs), func(i, j int) {
		stubs[i], stubs[j] = stubs[j], stubs[i]
	})

	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	discarded := 0
	for i := 0; i < len(stubs); i += 2 {
		a, b := stubs[i], stubs[i+1]
		if a == b || g.HasEdgeBetween(a, b) {
			discarded++
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
	}
	if discarded > 0 {
		logrus.Debugf("configuration model discarded %d of %d stub pairings", discarded, len(stubs)/2)
	}

	return adjacencyMatrix(g, n), nil
}

// adjacencyMatrix exports an undirected graph on nodes 0..n-1 as a
// symmetric 0/1 tie matrix.
func adjacencyMatrix(g *simple.UndirectedGraph, n int) *mat.SymDense {
	ties := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.HasEdgeBetween(int64(i), int64(j)) {
				ties.SetSym(i, j, 1)
			}
		}
	}
	return ties
}
