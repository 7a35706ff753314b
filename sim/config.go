package sim

import "gonum.org/v1/gonum/mat"

// BehaviorConfig groups the re-seating variant parameters. The variant is
// dormant in the baseline configuration: seated occupants never reconsider
// unless AllowReseating is set.
type BehaviorConfig struct {
	AllowReseating  bool
	MovingThreshold float64 // minimum utility gain required to move (default 1)
	MovingProb      float64 // per-tick chance a seated occupant reconsiders (default 0.2)
}

// DefaultBehavior returns the baseline behavior: re-seating disabled, with
// the dormant parameters at their documented defaults.
func DefaultBehavior() BehaviorConfig {
	return BehaviorConfig{
		AllowReseating:  false,
		MovingThreshold: 1,
		MovingProb:      0.2,
	}
}

// Config groups the constructor inputs for NewSimulator.
type Config struct {
	// Layout is the venue geometry. Required.
	Layout *VenueLayout

	// Coefficients is the raw [position, friendship, sociability,
	// accessibility] weight vector. Normalized to sum 1; all-zero switches
	// the run to uniform-random seat choice.
	Coefficients [4]float64

	// TieMatrix is the symmetric zero-diagonal social-tie matrix, treated
	// as read-only. Its order fixes the population size. Nil means a
	// tieless population sized by MaxOccupants (or the layout seat count).
	TieMatrix *mat.SymDense

	// SociabilitySequence supplies one sociability value per eventual
	// occupant, consumed in arrival order. Its length must equal the
	// population size. Nil means uniform samples over the default
	// sociability range, drawn from the run's seed, when the sociability
	// coefficient is non-zero.
	SociabilitySequence []float64

	// MaxOccupants caps admissions. Negative means the full population
	// (the tie-matrix order); 0 admits nobody. The cap may exceed the
	// layout's seat count; surplus occupants simply never find a seat.
	MaxOccupants int

	// Seed keys the simulation's partitioned RNG.
	Seed int64

	// Behavior configures the re-seating variant. Zero value disables it
	// with default dormant parameters.
	Behavior BehaviorConfig

	// FriendshipKernel and SociabilityKernel define social adjacency. Both
	// default to DefaultSocialKernel and must share the same dimensions.
	FriendshipKernel  *Kernel
	SociabilityKernel *Kernel
}
