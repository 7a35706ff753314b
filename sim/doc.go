// Package sim provides the core discrete-tick simulation engine for the
// classroom seating model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - layout.go: venue geometry (blocks, aisles, entrances, position utility)
//   - seat.go: per-seat utility scoring against the current occupancy
//   - simulator.go: the tick loop, admission, and roster activation
//
// # Architecture
//
// The sim package owns the grid of seats and the roster of occupants;
// collaborators live in sub-packages:
//   - sim/social/: tie-matrix generators (Erdős–Rényi, degree sequence)
//     and sociability samplers
//   - sim/analysis/: seating-profile measures used for model comparison
//
// Each tick the simulator admits at most one new occupant (while below the
// population cap), places it at a random entrance, and then lets every
// still-unseated occupant run the seat-selection procedure in arrival
// order. A seat's attractivity is a weighted sum of four normalized
// components: position, friendship, sociability, and accessibility. The
// weights are fixed per simulation; an all-zero weight vector switches the
// whole run to uniform-random seat choice.
//
// All randomness flows through a per-simulation PartitionedRNG (rng.go),
// so two simulators built from the same seed and configuration produce
// bit-identical occupancy snapshots.
package sim
