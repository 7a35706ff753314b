// Package social generates the social fabric consumed by the seating
// simulation: symmetric zero-diagonal tie matrices built from random-graph
// models, and per-occupant sociability sequences sampled from configured
// distributions. The simulator treats both as opaque, read-only inputs.
package social
