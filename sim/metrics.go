// Tracks simulation-wide occupancy statistics for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about a seating run. Useful for comparing
// coefficient settings and debugging behavior over time.
type Metrics struct {
	AdmittedOccupants int // Occupants created so far
	SeatedOccupants   int // Occupants that found a seat
	EmptySeatEvents   int // Decision procedures that found zero empty seats
	SeatChanges       int // Successful re-seats (re-seating variant only)

	InitialHappinessSum float64 // Sum of frozen first-seating happiness scores

	OccupancyByTick []int // Seated count after each tick
}

// NewMetrics returns an empty metrics record.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MeanInitialHappiness averages the frozen first-seating happiness over all
// seated occupants. Zero when nobody is seated.
func (m *Metrics) MeanInitialHappiness() float64 {
	if m.SeatedOccupants == 0 {
		return 0
	}
	return m.InitialHappinessSum / float64(m.SeatedOccupants)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(ticks int) {
	fmt.Println("=== Seating Metrics ===")
	fmt.Printf("Ticks                  : %d\n", ticks)
	fmt.Printf("Admitted Occupants     : %d\n", m.AdmittedOccupants)
	fmt.Printf("Seated Occupants       : %d\n", m.SeatedOccupants)
	fmt.Printf("Unseated Occupants     : %d\n", m.AdmittedOccupants-m.SeatedOccupants)
	fmt.Printf("Empty-Seat Events      : %d\n", m.EmptySeatEvents)
	fmt.Printf("Seat Changes           : %d\n", m.SeatChanges)
	if m.SeatedOccupants > 0 {
		fmt.Printf("Mean Initial Happiness : %.4f\n", m.MeanInitialHappiness())
	}
}
