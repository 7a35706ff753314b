package cmd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	sim "github.com/classroom-sim/classroom-sim/sim"
	"github.com/classroom-sim/classroom-sim/sim/social"
)

// composeSimulator turns a scenario spec into a ready simulator plus the
// number of ticks to run. The social fabric and sociability sequence are
// generated here; the engine treats both as opaque inputs.
func composeSimulator(spec *ScenarioSpec) (*sim.Simulator, int, error) {
	layoutCfg, err := spec.Layout.layoutConfig()
	if err != nil {
		return nil, 0, err
	}
	layout, err := sim.NewVenueLayout(layoutCfg)
	if err != nil {
		return nil, 0, err
	}

	ties, err := composeTieMatrix(spec, layout)
	if err != nil {
		return nil, 0, err
	}

	population := 0
	if ties != nil {
		population = ties.SymmetricDim()
	}
	sociability, err := composeSociability(&spec.Population.Sociability, population, spec.Seed)
	if err != nil {
		return nil, 0, err
	}

	maxOccupants := -1
	if spec.Population.MaxOccupants != nil {
		maxOccupants = *spec.Population.MaxOccupants
	}

	behavior := sim.DefaultBehavior()
	behavior.AllowReseating = spec.Behavior.AllowReseating
	if spec.Behavior.MovingThreshold != 0 {
		behavior.MovingThreshold = spec.Behavior.MovingThreshold
	}
	if spec.Behavior.MovingProb != 0 {
		behavior.MovingProb = spec.Behavior.MovingProb
	}

	s, err := sim.NewSimulator(sim.Config{
		Layout: layout,
		Coefficients: [4]float64{
			spec.Coefficients.Position,
			spec.Coefficients.Friendship,
			spec.Coefficients.Sociability,
			spec.Coefficients.Accessibility,
		},
		TieMatrix:           ties,
		SociabilitySequence: sociability,
		MaxOccupants:        maxOccupants,
		Seed:                spec.Seed,
		Behavior:            behavior,
	})
	if err != nil {
		return nil, 0, err
	}

	ticks := spec.Ticks
	if ticks == 0 {
		// Default: one tick per admissible occupant, enough to fill the room.
		ticks = s.MaxOccupants
	}
	return s, ticks, nil
}

// composeTieMatrix builds the social fabric: from a degree sequence when
// one is given, otherwise a random Erdős–Rényi network sized to cover both
// the seat count and the population cap.
func composeTieMatrix(spec *ScenarioSpec, layout *sim.VenueLayout) (*mat.SymDense, error) {
	pop := spec.Population
	if len(pop.DegreeSequence) > 0 {
		ties, err := social.FromDegreeSequence(pop.DegreeSequence, uint64(spec.Seed))
		if err != nil {
			return nil, fmt.Errorf("degree sequence: %w", err)
		}
		return ties, nil
	}

	n := layout.SeatCount
	if pop.MaxOccupants != nil && *pop.MaxOccupants > n {
		n = *pop.MaxOccupants
	}
	if n == 0 {
		return nil, nil
	}

	p := social.DefaultEdgeProbability
	if pop.EdgeProbability != nil {
		p = *pop.EdgeProbability
	}
	return social.ErdosRenyi(n, p, uint64(spec.Seed)), nil
}

// composeSociability resolves the sociability source: explicit sequence,
// sampled distribution, or nil for the engine default.
func composeSociability(spec *SociabilitySpec, population int, seed int64) ([]float64, error) {
	if len(spec.Sequence) > 0 {
		return spec.Sequence, nil
	}

	lo, hi := social.SociabilityMin, social.SociabilityMax
	if spec.Min != nil {
		lo = *spec.Min
	}
	if spec.Max != nil {
		hi = *spec.Max
	}
	if hi < lo {
		return nil, fmt.Errorf("sociability range [%v,%v] is inverted", lo, hi)
	}

	switch spec.Distribution {
	case "uniform":
		return social.UniformSociability(population, lo, hi, uint64(seed)), nil
	case "gaussian":
		return social.GaussianSociability(population, spec.Mean, spec.StdDev, lo, hi, uint64(seed)), nil
	default:
		return nil, nil
	}
}
