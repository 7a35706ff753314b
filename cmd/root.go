package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/classroom-sim/classroom-sim/sim"
	"github.com/classroom-sim/classroom-sim/sim/analysis"
)

var (
	// CLI flags for the simulation run
	seed         int64     // Seed for all randomized decisions
	ticks        int       // Number of ticks to simulate (0 = one per occupant)
	logLevel     string    // Log verbosity level
	scenarioPath string    // YAML scenario file; overrides the flags below
	blocks       []int     // Seats per row for each block
	numRows      int       // Total row count including aisle rows
	aisleRows    []int     // Horizontal aisle rows
	coeffs       []float64 // Utility weights: position, friendship, sociability, accessibility
	population   int       // Population cap (-1 = one occupant per seat)
	edgeProb     float64   // Erdős–Rényi edge probability for the tie network
	stateOut     string    // CSV file to write the final binary occupancy state to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "classroom-sim",
	Short: "Discrete-tick simulator for classroom seating dynamics",
}

// scenarioFromFlags assembles a ScenarioSpec when no scenario file is given.
func scenarioFromFlags() (*ScenarioSpec, error) {
	if len(coeffs) != 4 {
		return nil, fmt.Errorf("--coeffs needs exactly 4 values, got %d", len(coeffs))
	}
	spec := &ScenarioSpec{
		Seed:  seed,
		Ticks: ticks,
		Layout: LayoutSpec{
			Blocks:    blocks,
			NumRows:   numRows,
			AisleRows: aisleRows,
		},
		Coefficients: CoefficientSpec{
			Position:      coeffs[0],
			Friendship:    coeffs[1],
			Sociability:   coeffs[2],
			Accessibility: coeffs[3],
		},
		Population: PopulationSpec{
			EdgeProbability: &edgeProb,
		},
	}
	if population >= 0 {
		spec.Population.MaxOccupants = &population
	}
	return spec, spec.Validate()
}

// loadScenario resolves the scenario from file or flags.
func loadScenario() (*ScenarioSpec, error) {
	if scenarioPath != "" {
		return LoadScenarioSpec(scenarioPath)
	}
	return scenarioFromFlags()
}

// setUpLogging applies the --log flag process-wide.
func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the simulation using parameters from CLI flags or a
// scenario file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the seating simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		spec, err := loadScenario()
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		s, runTicks, err := composeSimulator(spec)
		if err != nil {
			logrus.Fatalf("Unable to build simulator: %v", err)
		}

		logrus.Infof("Starting simulation: %d seats, cap %d, %d ticks, coefficients %+v",
			s.Layout.SeatCount, s.MaxOccupants, runTicks, s.Coefs)

		s.Run(runTicks)
		s.Metrics.Print(s.TickCount)

		if stateOut != "" {
			if err := writeStateCSV(stateOut, s); err != nil {
				logrus.Fatalf("Unable to write state: %v", err)
			}
			logrus.Infof("Wrote occupancy state to %s", stateOut)
		}
	},
}

// profileCmd runs the simulation and prints the seating-profile measures
// used for model comparison.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Run the simulation and report seating-profile measures",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		spec, err := loadScenario()
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		s, runTicks, err := composeSimulator(spec)
		if err != nil {
			logrus.Fatalf("Unable to build simulator: %v", err)
		}
		s.Run(runTicks)

		state := s.BinaryState()
		if state == nil {
			logrus.Fatalf("Layout has no seats, nothing to profile")
		}

		fmt.Println("=== Seating Profile ===")
		fmt.Printf("Cluster lengths        : %v\n", analysis.ClusterCounts(state, s.Layout.Blocks))
		fmt.Printf("Entropy profile        : %v\n", analysis.EntropyProfile(state))
		fmt.Printf("Homogeneity            : %.4f\n", analysis.Homogeneity(state))
		fmt.Printf("Correlation            : %.4f\n", analysis.Correlation(state))
		fmt.Printf("RL nonuniformity       : %.4f\n", analysis.RunLengthNonuniformity(state, s.Layout.Blocks))
		fmt.Printf("RL long-run emphasis   : %.4f\n", analysis.LongRunEmphasis(state, s.Layout.Blocks))
	},
}

// writeStateCSV dumps the binary occupancy state, one CSV row per seat
// column, aisles stripped.
func writeStateCSV(path string, s *sim.Simulator) error {
	state := s.BinaryState()
	if state == nil {
		return fmt.Errorf("layout has no seats")
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	rows, cols := state.Dims()
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.Itoa(int(state.At(i, j)))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addScenarioFlags registers the shared simulation flags on a command.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all randomized decisions")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Number of ticks to simulate (0 = one per occupant)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides layout/population flags)")

	cmd.Flags().IntSliceVar(&blocks, "blocks", []int{6, 14, 6}, "Seats per row in each block, aisles in between")
	cmd.Flags().IntVar(&numRows, "rows", 14, "Total number of rows, aisle rows included")
	cmd.Flags().IntSliceVar(&aisleRows, "aisle-rows", nil, "Horizontal aisle rows (default front row)")
	cmd.Flags().Float64SliceVar(&coeffs, "coeffs", []float64{0.25, 0.25, 0.25, 0.25},
		"Utility weights: position,friendship,sociability,accessibility (all zero = random choice)")
	cmd.Flags().IntVar(&population, "population", -1, "Population cap (-1 = one occupant per seat)")
	cmd.Flags().Float64Var(&edgeProb, "edge-probability", 0.2, "Erdős–Rényi edge probability for the tie network")
	cmd.Flags().StringVar(&stateOut, "state-out", "", "Write the final binary occupancy state to this CSV file")
}

// init sets up CLI flags and subcommands
func init() {
	addScenarioFlags(runCmd)
	addScenarioFlags(profileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(profileCmd)
}
