package cmd

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	sim "github.com/classroom-sim/classroom-sim/sim"
)

// ScenarioSpec is the top-level YAML scenario configuration. Every field
// has a CLI-flag counterpart for quick runs; a scenario file wins over
// flags when both are given.
type ScenarioSpec struct {
	Seed  int64 `yaml:"seed"`
	Ticks int   `yaml:"ticks,omitempty"` // 0 = one tick per eventual occupant

	Layout       LayoutSpec      `yaml:"layout"`
	Coefficients CoefficientSpec `yaml:"coefficients"`
	Population   PopulationSpec  `yaml:"population"`
	Behavior     BehaviorSpec    `yaml:"behavior,omitempty"`
}

// LayoutSpec mirrors sim.LayoutConfig in YAML form.
type LayoutSpec struct {
	Blocks  []int `yaml:"blocks"`
	NumRows int   `yaml:"num_rows"`
	// AisleRows lists horizontal aisle rows; omitted means row 0.
	AisleRows []int `yaml:"aisle_rows,omitempty"`
	// Entrances lists [x, y] pairs; omitted means the front corners.
	Entrances [][2]int `yaml:"entrances,omitempty"`
	// PositionUtilities assigns static seat attractivity, row index =
	// column x. Either seat-only or full-grid shaped.
	PositionUtilities [][]float64 `yaml:"position_utilities,omitempty"`
}

// CoefficientSpec holds the raw utility weights; they are normalized to
// sum 1 at simulator construction.
type CoefficientSpec struct {
	Position      float64 `yaml:"position"`
	Friendship    float64 `yaml:"friendship"`
	Sociability   float64 `yaml:"sociability"`
	Accessibility float64 `yaml:"accessibility"`
}

// PopulationSpec configures who shows up and how they are tied together.
type PopulationSpec struct {
	// MaxOccupants caps admissions; omitted means the full population.
	MaxOccupants *int `yaml:"max_occupants,omitempty"`
	// EdgeProbability parameterizes the random (Erdős–Rényi) tie network.
	// Ignored when DegreeSequence is given. Omitted means the default 0.2.
	EdgeProbability *float64 `yaml:"edge_probability,omitempty"`
	// DegreeSequence builds the tie network from target friendship counts
	// per occupant; its length fixes the population size.
	DegreeSequence []int `yaml:"degree_sequence,omitempty"`

	Sociability SociabilitySpec `yaml:"sociability,omitempty"`
}

// SociabilitySpec selects the sociability source: an explicit sequence, or
// a sampled distribution ("uniform" or "gaussian").
type SociabilitySpec struct {
	Distribution string    `yaml:"distribution,omitempty"`
	Mean         float64   `yaml:"mean,omitempty"`
	StdDev       float64   `yaml:"std_dev,omitempty"`
	Min          *float64  `yaml:"min,omitempty"`
	Max          *float64  `yaml:"max,omitempty"`
	Sequence     []float64 `yaml:"sequence,omitempty"`
}

// BehaviorSpec mirrors sim.BehaviorConfig in YAML form.
type BehaviorSpec struct {
	AllowReseating  bool    `yaml:"allow_reseating"`
	MovingThreshold float64 `yaml:"moving_threshold,omitempty"`
	MovingProb      float64 `yaml:"moving_prob,omitempty"`
}

// LoadScenarioSpec reads and validates a YAML scenario file.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the parts of the spec the engine constructors cannot:
// shape constraints are left to sim.NewVenueLayout / sim.NewSimulator.
func (s *ScenarioSpec) Validate() error {
	if len(s.Layout.Blocks) == 0 {
		return fmt.Errorf("scenario: layout.blocks is required")
	}
	if s.Layout.NumRows < 1 {
		return fmt.Errorf("scenario: layout.num_rows must be at least 1")
	}
	switch s.Population.Sociability.Distribution {
	case "", "uniform", "gaussian":
	default:
		return fmt.Errorf("scenario: unknown sociability distribution %q", s.Population.Sociability.Distribution)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("scenario: ticks must not be negative")
	}
	return nil
}

// positionUtilityMatrix converts the YAML utility grid to a dense matrix,
// or nil when absent.
func (s *LayoutSpec) positionUtilityMatrix() (*mat.Dense, error) {
	grid := s.PositionUtilities
	if len(grid) == 0 {
		return nil, nil
	}
	cols := len(grid[0])
	if cols == 0 {
		return nil, fmt.Errorf("scenario: empty position_utilities row")
	}
	m := mat.NewDense(len(grid), cols, nil)
	for i, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("scenario: ragged position_utilities row %d", i)
		}
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// layoutConfig converts the YAML layout to the engine configuration.
func (s *LayoutSpec) layoutConfig() (sim.LayoutConfig, error) {
	pu, err := s.positionUtilityMatrix()
	if err != nil {
		return sim.LayoutConfig{}, err
	}
	var entrances []sim.Coord
	if s.Entrances != nil {
		entrances = make([]sim.Coord, len(s.Entrances))
		for i, e := range s.Entrances {
			entrances[i] = sim.Coord{X: e[0], Y: e[1]}
		}
	}
	return sim.LayoutConfig{
		Blocks:       s.Blocks,
		NumRows:      s.NumRows,
		PosUtilities: pu,
		Entrances:    entrances,
		AislesY:      s.AisleRows,
	}, nil
}
