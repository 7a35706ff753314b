package sim

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBinaryState_ShapeStripsAisles(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2, 3, 2}, NumRows: 3}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
	})

	state := s.BinaryState()
	r, c := state.Dims()
	// 9 grid columns minus 2 aisle columns, 3 rows minus the front aisle.
	if r != 7 || c != 2 {
		t.Errorf("state shape = %dx%d, want 7x2", r, c)
	}
	if mat.Sum(state) != 0 {
		t.Error("empty venue exported a non-zero state")
	}
}

func TestBinaryState_MarksOccupiedSeats(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2, 2}, NumRows: 2}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 2,
	})
	// Grid (3,1) is the second block's first seat: stripped row 2, stripped
	// column 0.
	if !s.StepPredetermined(Coord{3, 1}) {
		t.Fatal("scripted seating failed")
	}

	state := s.BinaryState()
	if got := state.At(2, 0); got != 1 {
		t.Errorf("state(2,0) = %v, want 1", got)
	}
	if mat.Sum(state) != 1 {
		t.Errorf("state sum = %v, want 1", mat.Sum(state))
	}
}

func TestBinaryState_IdempotentBetweenTicks(t *testing.T) {
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2, 2}, NumRows: 2}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 3,
		Seed:         13,
	})
	s.Run(2)

	if !mat.Equal(s.BinaryState(), s.BinaryState()) {
		t.Error("re-export without a tick changed the state")
	}
}

func TestHappinessState_CarriesFrozenScores(t *testing.T) {
	pu := mat.NewDense(2, 1, []float64{1, 2})
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2}, NumRows: 1, AislesY: []int{}, PosUtilities: pu}),
		Coefficients: [4]float64{1, 0, 0, 0},
		MaxOccupants: 1,
	})
	if !s.StepPredetermined(Coord{1, 0}) {
		t.Fatal("scripted seating failed")
	}

	state := s.HappinessState()
	if got := state.At(1, 0); got != s.Roster[0].InitialHappiness {
		t.Errorf("happiness state = %v, want frozen score %v", got, s.Roster[0].InitialHappiness)
	}
	if got := state.At(0, 0); got != 0 {
		t.Errorf("empty seat happiness = %v, want 0", got)
	}
}

func TestStates_NilWithoutSeatRows(t *testing.T) {
	// One row consumed entirely by the default front aisle leaves no seats.
	s := mustSimulator(t, Config{
		Layout:       mustLayout(t, LayoutConfig{Blocks: []int{2}, NumRows: 1}),
		Coefficients: [4]float64{1, 0, 0, 0},
	})
	if s.BinaryState() != nil {
		t.Error("binary state for a seatless venue should be nil")
	}
	if s.HappinessState() != nil {
		t.Error("happiness state for a seatless venue should be nil")
	}
}
