package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioSpec_FullScenario(t *testing.T) {
	path := writeScenario(t, `
seed: 7
ticks: 5
layout:
  blocks: [2, 2]
  num_rows: 2
  aisle_rows: [0]
  entrances: [[0, 0], [4, 0]]
  position_utilities:
    - [1]
    - [0.5]
    - [0.25]
    - [0.125]
coefficients:
  position: 1
  accessibility: 0.5
population:
  max_occupants: 3
  edge_probability: 0.5
  sociability:
    distribution: gaussian
    mean: 0.1
    std_dev: 0.2
behavior:
  allow_reseating: true
  moving_threshold: 0.3
`)

	spec, err := LoadScenarioSpec(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 5, spec.Ticks)
	assert.Equal(t, []int{2, 2}, spec.Layout.Blocks)
	assert.Equal(t, 2, spec.Layout.NumRows)
	assert.Equal(t, []int{0}, spec.Layout.AisleRows)
	assert.Len(t, spec.Layout.PositionUtilities, 4)
	assert.Equal(t, [2]int{4, 0}, spec.Layout.Entrances[1])
	assert.Equal(t, 1.0, spec.Coefficients.Position)
	assert.Equal(t, 0.5, spec.Coefficients.Accessibility)
	require.NotNil(t, spec.Population.MaxOccupants)
	assert.Equal(t, 3, *spec.Population.MaxOccupants)
	require.NotNil(t, spec.Population.EdgeProbability)
	assert.Equal(t, 0.5, *spec.Population.EdgeProbability)
	assert.Equal(t, "gaussian", spec.Population.Sociability.Distribution)
	assert.True(t, spec.Behavior.AllowReseating)
	assert.Equal(t, 0.3, spec.Behavior.MovingThreshold)
}

func TestLoadScenarioSpec_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing blocks": `
layout:
  num_rows: 3
`,
		"no rows": `
layout:
  blocks: [2, 2]
  num_rows: 0
`,
		"negative ticks": `
ticks: -1
layout:
  blocks: [2]
  num_rows: 2
`,
		"unknown distribution": `
layout:
  blocks: [2]
  num_rows: 2
population:
  sociability:
    distribution: pareto
`,
		"malformed yaml": `{layout: [`,
	}
	for name, content := range cases {
		_, err := LoadScenarioSpec(writeScenario(t, content))
		assert.Error(t, err, name)
	}
}

func TestLoadScenarioSpec_MissingFile(t *testing.T) {
	_, err := LoadScenarioSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPositionUtilityMatrix_Ragged(t *testing.T) {
	spec := LayoutSpec{PositionUtilities: [][]float64{{1, 2}, {3}}}
	_, err := spec.positionUtilityMatrix()
	assert.Error(t, err)
}

func TestPositionUtilityMatrix_Absent(t *testing.T) {
	spec := LayoutSpec{}
	m, err := spec.positionUtilityMatrix()
	require.NoError(t, err)
	assert.Nil(t, m)
}
