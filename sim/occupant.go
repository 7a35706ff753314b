// Defines the Occupant and the seat-selection decision procedure. An
// occupant is created by the simulator when admitted, placed unseated at an
// entrance, and tries to seat itself every tick until it succeeds.

package sim

import (
	"github.com/sirupsen/logrus"
)

// Occupant models one arriving individual.
type Occupant struct {
	// ID is the sequential admission index; it doubles as the row/column
	// index into the simulation's tie matrix.
	ID int

	// Sociability is the will to sit next to strangers, within the sampled
	// sociability range of the run (negative = avoids strangers).
	Sociability float64

	// Seated flips to true at the first successful seating and never back.
	Seated bool

	// InitialHappiness is the happiness score of the seat taken at first
	// seating. Frozen; later re-seating does not update it.
	InitialHappiness float64

	// Pos is the current grid position: an entrance while unseated, the
	// seat coordinate once seated. Valid only when OnGrid is true.
	Pos    Coord
	OnGrid bool

	// Re-seating variant, disabled in the baseline configuration.
	WillToChangeSeat bool
	MovingThreshold  float64
	MovingProb       float64

	sim *Simulator
}

// Step activates the occupant for one tick: unseated occupants run the
// seat-selection procedure; seated ones reconsider their seat only under
// the re-seating variant, with the configured probability.
func (o *Occupant) Step() {
	if !o.Seated {
		o.chooseSeat(nil)
	}

	if o.WillToChangeSeat && o.Seated {
		if r := o.sim.rng.ForSubsystem(SubsystemBehavior).Float64(); r < o.MovingProb {
			o.chooseSeat(o.sim.SeatAt(o.Pos))
		}
	}
}

// ChooseSeat runs the utility-driven selection over all empty seats and
// commits the best one. Returns false when no empty seat exists (reported,
// not fatal; the occupant retries next tick).
func (o *Occupant) ChooseSeat() bool {
	return o.chooseSeat(nil)
}

// ChooseSeatAt takes the seat at a predetermined coordinate, used by
// scripted seating. The seat is taken only if it exists and is empty.
func (o *Occupant) ChooseSeatAt(pos Coord) bool {
	seat := o.sim.SeatAt(pos)
	if seat == nil || seat.Occupied() {
		return false
	}
	o.moveTo(seat, nil)
	return true
}

// chooseSeat implements both selection modes. old is non-nil only when a
// seated occupant reconsiders: the candidate then has to beat the current
// seat's utility by more than the moving threshold, net of the stand-up
// cost of leaving it.
func (o *Occupant) chooseSeat(old *Seat) bool {
	options := o.sim.EmptySeats()
	if len(options) == 0 {
		o.sim.Metrics.EmptySeatEvents++
		logrus.Warnf("[tick %04d] occupant %d found no empty seat", o.sim.TickCount, o.ID)
		return false
	}

	rng := o.sim.rng.ForSubsystem(SubsystemSeating)

	if o.sim.RandomSeatChoice {
		o.moveTo(options[rng.Intn(len(options))], old)
		return true
	}

	utilities := make([]float64, len(options))
	maxU := 0.0
	for i, seat := range options {
		u := seat.TotalUtility(o)
		if old != nil {
			u -= old.StandUpCost()
		}
		utilities[i] = u
		if i == 0 || u > maxU {
			maxU = u
		}
	}

	if old != nil && maxU-old.TotalUtility(o) <= o.MovingThreshold {
		// Nothing out there is enough of an improvement to move for.
		return false
	}

	// Uniform pick among all maximal seats, never by index order, so equal
	// seats carry no positional bias. Exact float comparison is intended:
	// equally scored seats go through identical arithmetic.
	best := make([]*Seat, 0, 4)
	for i, u := range utilities {
		if u == maxU {
			best = append(best, options[i])
		}
	}
	o.moveTo(best[rng.Intn(len(best))], old)
	return true
}

// moveTo commits a seat assignment. For a re-seat, the old seat is vacated
// first and becomes immediately available to others. First-time seating
// freezes InitialHappiness, which excludes the accessibility component.
func (o *Occupant) moveTo(seat, old *Seat) {
	if old != nil {
		old.occupant = nil
		o.sim.Metrics.SeatChanges++
	}
	seat.occupant = o
	o.Pos = seat.Pos
	o.OnGrid = true
	if !o.Seated {
		o.InitialHappiness = seat.Happiness(o)
		o.Seated = true
		o.sim.Metrics.SeatedOccupants++
		o.sim.Metrics.InitialHappinessSum += o.InitialHappiness
		logrus.Infof("[tick %04d] occupant %d seated at %v (happiness %.3f)",
			o.sim.TickCount, o.ID, o.Pos, o.InitialHappiness)
	}
}
