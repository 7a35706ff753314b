package sim

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestOccupant_ChoosesHighestUtilitySeat(t *testing.T) {
	pu := mat.NewDense(3, 1, []float64{0.5, 0.1, 1.0})
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{3}, NumRows: 1, AislesY: []int{}, PosUtilities: pu}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
		Seed:         1,
	})
	s.Step()

	o := s.Roster[0]
	if !o.Seated {
		t.Fatal("occupant not seated after one tick")
	}
	if o.Pos != (Coord{2, 0}) {
		t.Errorf("occupant seated at %v, want (2,0)", o.Pos)
	}
	if o.InitialHappiness != 1 {
		t.Errorf("initial happiness = %v, want 1", o.InitialHappiness)
	}
}

func TestOccupant_TieBreakIsUniform(t *testing.T) {
	// Two seats score an identical maximum, one scores lower. Across many
	// seeds the maxima split evenly and the inferior seat is never taken.
	const trials = 600
	pu := mat.NewDense(3, 1, []float64{1, 0.2, 1})

	counts := make(map[Coord]int)
	for seed := 0; seed < trials; seed++ {
		s := mustSimulator(t, Config{
			Layout:       mustLayout(t, LayoutConfig{Blocks: []int{3}, NumRows: 1, AislesY: []int{}, PosUtilities: pu}),
			Coefficients: [4]float64{1, 0, 0, 0},
			MaxOccupants: 1,
			Seed:         int64(seed),
		})
		s.Step()
		counts[s.Roster[0].Pos]++
	}

	if counts[Coord{1, 0}] != 0 {
		t.Errorf("inferior seat chosen %d times, want 0", counts[Coord{1, 0}])
	}
	for _, c := range []Coord{{0, 0}, {2, 0}} {
		freq := float64(counts[c]) / trials
		if freq < 0.4 || freq > 0.6 {
			t.Errorf("maximal seat %v frequency = %.3f, want within [0.4, 0.6]", c, freq)
		}
	}
}

func TestOccupant_RandomModeIsUniform(t *testing.T) {
	// All-zero coefficients select uniformly among empty seats. Chi-square
	// over 4 seats at the 0.999 quantile keeps the flake rate negligible.
	const trials = 2000

	counts := make(map[Coord]int)
	for seed := 0; seed < trials; seed++ {
		s := mustSimulator(t, Config{
			Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2, 2}, NumRows: 1, AislesY: []int{}}),
			MaxOccupants: 1,
			Seed:         int64(seed),
		})
		if !s.RandomSeatChoice {
			t.Fatal("all-zero coefficients did not enable random seat choice")
		}
		s.Step()
		counts[s.Roster[0].Pos]++
	}

	if len(counts) != 4 {
		t.Fatalf("occupants reached %d distinct seats, want 4", len(counts))
	}
	expected := float64(trials) / 4
	chi2 := 0.0
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	if limit := (distuv.ChiSquared{K: 3}).Quantile(0.999); chi2 > limit {
		t.Errorf("chi-square = %.2f over limit %.2f, seat choice not uniform: %v", chi2, limit, counts)
	}
}

func TestOccupant_PredeterminedSeating(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2}, NumRows: 1, AislesY: []int{}}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 2,
	})

	if !s.StepPredetermined(Coord{0, 0}) {
		t.Fatal("scripted seating at empty seat failed")
	}
	// The target is taken now; the occupant is still admitted but stays
	// unseated.
	if s.StepPredetermined(Coord{0, 0}) {
		t.Error("scripted seating at occupied seat succeeded")
	}
	if s.Metrics.AdmittedOccupants != 2 || s.Metrics.SeatedOccupants != 1 {
		t.Errorf("admitted/seated = %d/%d, want 2/1",
			s.Metrics.AdmittedOccupants, s.Metrics.SeatedOccupants)
	}
	// Population cap reached: no further admission.
	if s.StepPredetermined(Coord{1, 0}) {
		t.Error("scripted seating beyond the population cap succeeded")
	}
	if s.Metrics.AdmittedOccupants != 2 {
		t.Errorf("admitted = %d after cap, want 2", s.Metrics.AdmittedOccupants)
	}
}

func TestOccupant_PredeterminedAisleTargetFails(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{1, 1}, NumRows: 1, AislesY: []int{}}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
	})
	if s.StepPredetermined(Coord{1, 0}) {
		t.Error("scripted seating at an aisle coordinate succeeded")
	}
}

func TestOccupant_RetriesWhenVenueFull(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2}, NumRows: 1, AislesY: []int{}}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 3,
		Seed:         9,
	})
	s.Run(6)

	if s.Metrics.AdmittedOccupants != 3 {
		t.Errorf("admitted = %d, want 3", s.Metrics.AdmittedOccupants)
	}
	if s.Metrics.SeatedOccupants != 2 {
		t.Errorf("seated = %d, want 2", s.Metrics.SeatedOccupants)
	}
	if s.Metrics.EmptySeatEvents == 0 {
		t.Error("surplus occupant never reported an empty-seat event")
	}
	if s.Roster[2].Seated {
		t.Error("surplus occupant seated in a full venue")
	}
}

func TestOccupant_ReseatingMovesForBigGain(t *testing.T) {
	pu := mat.NewDense(3, 1, []float64{0.2, 0.2, 1.0})
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{3}, NumRows: 1, AislesY: []int{}, PosUtilities: pu}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
		Behavior:     BehaviorConfig{AllowReseating: true, MovingThreshold: 0.1, MovingProb: 1},
	})
	if !s.StepPredetermined(Coord{0, 0}) {
		t.Fatal("scripted seating failed")
	}
	o := s.Roster[0]
	o.WillToChangeSeat = true
	frozen := o.InitialHappiness

	s.Step()

	if o.Pos != (Coord{2, 0}) {
		t.Errorf("occupant at %v after reconsidering, want (2,0)", o.Pos)
	}
	if s.Metrics.SeatChanges != 1 {
		t.Errorf("seat changes = %d, want 1", s.Metrics.SeatChanges)
	}
	if s.SeatAt(Coord{0, 0}).Occupied() {
		t.Error("vacated seat still occupied")
	}
	if o.InitialHappiness != frozen {
		t.Errorf("initial happiness changed from %v to %v on re-seat", frozen, o.InitialHappiness)
	}
}

func TestOccupant_ReseatingRespectsThreshold(t *testing.T) {
	pu := mat.NewDense(3, 1, []float64{0.2, 0.2, 1.0})
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{3}, NumRows: 1, AislesY: []int{}, PosUtilities: pu}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
		Behavior:     BehaviorConfig{AllowReseating: true, MovingThreshold: 2, MovingProb: 1},
	})
	if !s.StepPredetermined(Coord{0, 0}) {
		t.Fatal("scripted seating failed")
	}
	s.Roster[0].WillToChangeSeat = true

	s.Run(3)

	if s.Roster[0].Pos != (Coord{0, 0}) {
		t.Errorf("occupant moved to %v despite prohibitive threshold", s.Roster[0].Pos)
	}
	if s.Metrics.SeatChanges != 0 {
		t.Errorf("seat changes = %d, want 0", s.Metrics.SeatChanges)
	}
}
