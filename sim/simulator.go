// The Simulator owns the venue state and drives the tick loop: admission,
// activation, and the metrics that fall out of both.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/classroom-sim/classroom-sim/sim/social"
)

// Simulator owns the venue grid and the roster of occupants and advances
// them tick by tick. One tick admits at most one new occupant (while below
// the population cap) and then activates every still-unseated occupant in
// arrival order.
//
// A Simulator is single-threaded: one caller advances ticks, nothing else
// mutates the grid or roster. The layout and tie matrix are shared
// read-only; independent simulators may run in parallel.
type Simulator struct {
	Layout *VenueLayout

	// Coefs is the normalized utility weight vector. All-zero raw weights
	// set RandomSeatChoice instead, bypassing utility computation entirely.
	Coefs            Coefficients
	RandomSeatChoice bool

	FriendshipKernel  *Kernel
	SociabilityKernel *Kernel

	// TieMatrix holds pairwise tie strengths indexed by occupant ID.
	// Read-only for the lifetime of the run. Nil only when the population
	// size is zero.
	TieMatrix *mat.SymDense

	// MaxOccupants caps admissions; it may exceed the seat count, in which
	// case surplus occupants keep retrying and never seat.
	MaxOccupants int

	Behavior BehaviorConfig

	// Roster lists all admitted occupants in arrival order.
	Roster []*Occupant
	// Seats lists all seats in creation order (column-major), which fixes
	// the candidate enumeration order for deterministic seat selection.
	Seats []*Seat

	Metrics   *Metrics
	TickCount int

	grid             map[Coord]*Seat
	sociabilityQueue []float64
	sociabilityMin   float64
	sociabilityMax   float64
	rng              *PartitionedRNG
}

// NewSimulator validates the configuration and builds a ready simulator
// with an empty grid. Construction is the only place configuration errors
// surface; a built simulator never fails a tick.
func NewSimulator(cfg Config) (*Simulator, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("%w: layout is required", ErrConfiguration)
	}

	coefs, random, err := NewCoefficients(cfg.Coefficients)
	if err != nil {
		return nil, err
	}

	// The tie matrix order fixes the population size; occupant IDs index it.
	population := cfg.Layout.SeatCount
	if cfg.TieMatrix != nil {
		population = cfg.TieMatrix.SymmetricDim()
	} else if cfg.MaxOccupants > 0 {
		population = cfg.MaxOccupants
	}

	maxOccupants := cfg.MaxOccupants
	if maxOccupants < 0 {
		maxOccupants = population
	}
	if maxOccupants > population {
		logrus.Warnf("population cap %d exceeds tie-matrix order %d, clamping", maxOccupants, population)
		maxOccupants = population
	}

	tieMatrix := cfg.TieMatrix
	if tieMatrix == nil && population > 0 {
		tieMatrix = mat.NewSymDense(population, nil)
	}

	sociability := cfg.SociabilitySequence
	if sociability == nil {
		if coefs.Sociability != 0 && population > 0 {
			// Default sociability values are sampled uniformly over the
			// standard range, off the run's seed.
			sociability = social.UniformSociability(population, social.SociabilityMin, social.SociabilityMax, uint64(cfg.Seed))
		}
	} else if len(sociability) != population {
		return nil, fmt.Errorf("%w: sociability sequence has %d values for a population of %d",
			ErrConfiguration, len(sociability), population)
	}

	sMin, sMax := 0.0, 0.0
	for i, v := range sociability {
		if i == 0 || v < sMin {
			sMin = v
		}
		if i == 0 || v > sMax {
			sMax = v
		}
	}

	friendshipKernel := cfg.FriendshipKernel
	if friendshipKernel == nil {
		friendshipKernel = DefaultSocialKernel()
	}
	sociabilityKernel := cfg.SociabilityKernel
	if sociabilityKernel == nil {
		sociabilityKernel = DefaultSocialKernel()
	}
	fx, fy := friendshipKernel.Dims()
	sx, sy := sociabilityKernel.Dims()
	if fx != sx || fy != sy {
		return nil, fmt.Errorf("%w: friendship kernel is %dx%d but sociability kernel is %dx%d",
			ErrConfiguration, fx, fy, sx, sy)
	}

	behavior := cfg.Behavior
	if behavior == (BehaviorConfig{}) {
		behavior = DefaultBehavior()
	}

	sim := &Simulator{
		Layout:            cfg.Layout,
		Coefs:             coefs,
		RandomSeatChoice:  random,
		FriendshipKernel:  friendshipKernel,
		SociabilityKernel: sociabilityKernel,
		TieMatrix:         tieMatrix,
		MaxOccupants:      maxOccupants,
		Behavior:          behavior,
		Metrics:           NewMetrics(),
		grid:              make(map[Coord]*Seat, cfg.Layout.SeatCount),
		sociabilityQueue:  append([]float64(nil), sociability...),
		sociabilityMin:    sMin,
		sociabilityMax:    sMax,
		rng:               NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}

	// One seat per non-aisle coordinate, column-major creation order.
	for x := 0; x < cfg.Layout.Width; x++ {
		for y := 0; y < cfg.Layout.NumRows; y++ {
			c := Coord{x, y}
			if cfg.Layout.IsAisle(c) {
				continue
			}
			seat := &Seat{Pos: c, sim: sim}
			sim.grid[c] = seat
			sim.Seats = append(sim.Seats, seat)
		}
	}

	return sim, nil
}

// SeatAt returns the seat at a coordinate, or nil for aisle and off-grid
// positions.
func (sim *Simulator) SeatAt(c Coord) *Seat {
	return sim.grid[c]
}

// EmptySeats returns all currently unoccupied seats in creation order.
func (sim *Simulator) EmptySeats() []*Seat {
	options := make([]*Seat, 0, len(sim.Seats))
	for _, seat := range sim.Seats {
		if !seat.Occupied() {
			options = append(options, seat)
		}
	}
	return options
}

// seatedBetween counts seated occupants at columns [x0, x1) in row y.
func (sim *Simulator) seatedBetween(x0, x1, y int) int {
	count := 0
	for x := x0; x < x1; x++ {
		if seat := sim.grid[Coord{x, y}]; seat != nil && seat.Occupied() {
			count++
		}
	}
	return count
}

// Step advances the simulation by one tick: admit one new occupant if the
// population cap allows, then activate the roster in arrival order.
func (sim *Simulator) Step() {
	sim.TickCount++

	if len(sim.Roster) < sim.MaxOccupants {
		sim.admit()
	}

	for _, o := range sim.Roster {
		if !o.Seated || o.WillToChangeSeat {
			o.Step()
		}
	}

	sim.Metrics.OccupancyByTick = append(sim.Metrics.OccupancyByTick, sim.Metrics.SeatedOccupants)
}

// admit creates the next occupant and places it, unseated, at a uniformly
// random entrance. A sociability sample is consumed only when the
// sociability coefficient is live; otherwise the neutral default applies.
func (sim *Simulator) admit() {
	n := len(sim.Roster)

	sociability := 0.0
	if sim.Coefs.Sociability != 0 && len(sim.sociabilityQueue) > 0 {
		sociability = sim.sociabilityQueue[0]
		sim.sociabilityQueue = sim.sociabilityQueue[1:]
	}

	o := &Occupant{
		ID:               n,
		Sociability:      sociability,
		WillToChangeSeat: sim.Behavior.AllowReseating,
		MovingThreshold:  sim.Behavior.MovingThreshold,
		MovingProb:       sim.Behavior.MovingProb,
		sim:              sim,
	}
	sim.Roster = append(sim.Roster, o)
	sim.Metrics.AdmittedOccupants++

	entrance := sim.Layout.Entrances[sim.rng.ForSubsystem(SubsystemEntrance).Intn(len(sim.Layout.Entrances))]
	o.Pos = entrance
	o.OnGrid = true

	logrus.Infof("[tick %04d] occupant %d enters at %v", sim.TickCount, o.ID, entrance)
}

// StepPredetermined advances one tick of scripted seating: if the
// population cap allows, a new occupant is admitted and seated directly at
// the target coordinate. Returns false when the cap is reached or the
// target seat is missing or taken.
func (sim *Simulator) StepPredetermined(pos Coord) bool {
	sim.TickCount++

	if len(sim.Roster) >= sim.MaxOccupants {
		return false
	}

	o := &Occupant{
		ID:              len(sim.Roster),
		MovingThreshold: sim.Behavior.MovingThreshold,
		MovingProb:      sim.Behavior.MovingProb,
		sim:             sim,
	}
	sim.Roster = append(sim.Roster, o)
	sim.Metrics.AdmittedOccupants++

	if !o.ChooseSeatAt(pos) {
		logrus.Warnf("[tick %04d] predetermined seat %v unavailable for occupant %d", sim.TickCount, pos, o.ID)
		return false
	}
	return true
}

// Run advances the simulation by the given number of ticks.
func (sim *Simulator) Run(ticks int) {
	for t := 0; t < ticks; t++ {
		logrus.Infof("[tick %04d] advancing", sim.TickCount+1)
		sim.Step()
	}
	logrus.Infof("[tick %04d] simulation ended, %d/%d occupants seated",
		sim.TickCount, sim.Metrics.SeatedOccupants, sim.Metrics.AdmittedOccupants)
}
