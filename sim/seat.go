// Defines the Seat and its utility scoring. A seat is a plain record tied
// to one grid cell; all sub-scores are computed on demand against the
// current occupancy snapshot, so they change as the venue fills up.

package sim

// Seat is one fixed, occupiable grid cell. It holds at most one occupant
// and a non-owning reference to its simulator for layout and neighborhood
// queries.
type Seat struct {
	Pos Coord

	occupant *Occupant
	sim      *Simulator
}

// Occupant returns the occupant seated here, or nil.
func (s *Seat) Occupant() *Occupant {
	return s.occupant
}

// Occupied reports whether the seat currently holds an occupant.
func (s *Seat) Occupied() bool {
	return s.occupant != nil
}

// PositionUtility returns the seat's static attractivity from the layout,
// in [0,1].
func (s *Seat) PositionUtility() float64 {
	return s.sim.Layout.PositionUtility(s.Pos)
}

// Accessibility scores how easy the seat is to reach: 1 when it is flush
// against an aisle with nobody to pass, falling toward 0 as more seated
// occupants block the path. The seated count between the seat and its
// nearest aisle is taken on the cheaper of the left and right side and
// normalized by the layout's MaxPass bound. A side with no aisle never
// wins the minimum.
func (s *Seat) Accessibility() float64 {
	layout := s.sim.Layout

	aisleLeft, hasLeft := 0, false
	aisleRight, hasRight := 0, false
	for _, ax := range layout.AislesX {
		// AislesX is ascending, so the last aisle left of the seat is the
		// nearest one, and the first aisle right of it likewise.
		if ax < s.Pos.X {
			aisleLeft, hasLeft = ax, true
		}
		if ax > s.Pos.X && !hasRight {
			aisleRight, hasRight = ax, true
		}
	}
	if !hasLeft && !hasRight {
		// No vertical aisle anywhere: there is no aisle path on which
		// seated occupants could block this seat.
		return 1
	}
	if layout.MaxPass <= 0 {
		// Every block is at most one seat wide; nobody can ever be passed.
		return 1
	}

	pass := -1
	if hasLeft {
		pass = s.sim.seatedBetween(aisleLeft+1, s.Pos.X, s.Pos.Y)
	}
	if hasRight {
		if right := s.sim.seatedBetween(s.Pos.X+1, aisleRight, s.Pos.Y); pass < 0 || right < pass {
			pass = right
		}
	}
	return 1 - float64(pass)/float64(layout.MaxPass)
}

// Neighborhood returns the IDs of seated occupants in the sizeX-by-sizeY
// window centered on this seat (-1 where empty, off-grid, or aisle). Even
// extents are reduced by one so the seat itself is the center cell.
func (s *Seat) Neighborhood(sizeX, sizeY int) [][]int {
	if sizeX%2 == 0 {
		sizeX--
	}
	if sizeY%2 == 0 {
		sizeY--
	}
	toCenterX, toCenterY := sizeX/2, sizeY/2

	ids := make([][]int, sizeX)
	for i := range ids {
		ids[i] = make([]int, sizeY)
		for j := range ids[i] {
			ids[i][j] = -1
			c := Coord{s.Pos.X + i - toCenterX, s.Pos.Y + j - toCenterY}
			if !s.sim.Layout.InBounds(c) {
				continue
			}
			if nb := s.sim.SeatAt(c); nb != nil && nb.occupant != nil && nb.occupant.Seated {
				ids[i][j] = nb.occupant.ID
			}
		}
	}
	return ids
}

// SocialUtility scores the seat's neighborhood for the deciding occupant.
// Seated neighbors with a social tie feed the friendship component through
// the friendship kernel; tieless neighbors (strangers) feed the occupant's
// own sociability through the sociability kernel instead. The raw
// sociability sum is rescaled into [0,1] against the min/max of the
// sociability values actually sampled for this run; a degenerate range
// (min == max) maps to 0.
func (s *Seat) SocialUtility(o *Occupant) (friendship, sociability float64) {
	kx, ky := s.sim.FriendshipKernel.Dims()
	neighborhood := s.Neighborhood(kx, ky)

	raw := 0.0
	for i := range neighborhood {
		for j, id := range neighborhood[i] {
			if id < 0 {
				continue
			}
			tie := s.sim.TieMatrix.At(o.ID, id)
			friendship += s.sim.FriendshipKernel.At(i, j) * tie
			if tie == 0 {
				raw += s.sim.SociabilityKernel.At(i, j) * o.Sociability
			}
		}
	}

	sMin, sMax := s.sim.sociabilityMin, s.sim.sociabilityMax
	if sMax > sMin {
		sociability = (raw - sMin) / (sMax - sMin)
	}
	return friendship, sociability
}

// TotalUtility combines all four components with the simulation's
// coefficient vector. With coefficients in [0,1] summing to 1 the result
// stays in [0,1].
func (s *Seat) TotalUtility(o *Occupant) float64 {
	friendship, sociability := s.SocialUtility(o)
	c := s.sim.Coefs
	return c.Position*s.PositionUtility() +
		c.Friendship*friendship +
		c.Sociability*sociability +
		c.Accessibility*s.Accessibility()
}

// Happiness is the seat's utility without the accessibility component:
// getting to the seat may be hard, but once seated that difficulty no
// longer affects satisfaction.
func (s *Seat) Happiness(o *Occupant) float64 {
	friendship, sociability := s.SocialUtility(o)
	c := s.sim.Coefs
	return c.Position*s.PositionUtility() +
		c.Friendship*friendship +
		c.Sociability*sociability
}

// StandUpCost is the price of leaving this seat again: the blocked-path
// fraction the accessibility score discounts on the way in, weighted by
// the accessibility coefficient. Used only by the re-seating variant.
func (s *Seat) StandUpCost() float64 {
	return s.sim.Coefs.Accessibility * (1 - s.Accessibility())
}
