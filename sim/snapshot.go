// Occupancy snapshot export: the sole output artifact consumed by the
// comparison and sensitivity tooling downstream.

package sim

import "gonum.org/v1/gonum/mat"

// BinaryState exports the current seating distribution over non-aisle
// seats only: 1 where a seat is occupied, 0 where empty. Row index runs
// over seat columns (x with aisle columns stripped), column index over
// seat rows (y with aisle rows stripped). Re-exporting without advancing
// the tick yields an identical matrix. Nil when the layout has no seats.
func (sim *Simulator) BinaryState() *mat.Dense {
	return sim.strippedState(func(s *Seat) float64 {
		if s.Occupied() {
			return 1
		}
		return 0
	})
}

// HappinessState exports the frozen initial-happiness score of each seated
// occupant at its seat position, 0 where empty. Same shape and orientation
// as BinaryState.
func (sim *Simulator) HappinessState() *mat.Dense {
	return sim.strippedState(func(s *Seat) float64 {
		if s.Occupied() {
			return s.Occupant().InitialHappiness
		}
		return 0
	})
}

func (sim *Simulator) strippedState(value func(*Seat) float64) *mat.Dense {
	cols := sim.Layout.Width - len(sim.Layout.AislesX)
	rows := sim.Layout.NumRows - len(sim.Layout.AislesY)
	if cols <= 0 || rows <= 0 {
		return nil
	}

	out := mat.NewDense(cols, rows, nil)
	xi := 0
	for x := 0; x < sim.Layout.Width; x++ {
		if sim.Layout.aisleXSet[x] {
			continue
		}
		yi := 0
		for y := 0; y < sim.Layout.NumRows; y++ {
			if sim.Layout.aisleYSet[y] {
				continue
			}
			out.Set(xi, yi, value(sim.grid[Coord{x, y}]))
			yi++
		}
		xi++
	}
	return out
}
