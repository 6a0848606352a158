package circuit

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
)

func testManager(t *testing.T, nQubits int) *Manager {
	t.Helper()
	clk := clock.Manual(time.Date(2025, 5, 31, 17, 31, 7, 0, time.UTC))
	return NewManager(nQubits, clk, audit.NopRecorder{}, zerolog.Nop())
}

func TestCreateCircuit(t *testing.T) {
	m := testManager(t, 20)

	spec, err := m.CreateCircuit([]int{4, 4}, 2)
	require.NoError(t, err)

	assert.NotEmpty(t, spec.ID)
	assert.Equal(t, ProfileLearning, spec.Type)
	assert.Equal(t, 20, spec.Qubits)
	assert.Equal(t, []int{4, 4}, spec.InputShape)
	assert.Equal(t, ConnectivityAllToAll, spec.Profile.Connectivity)
	assert.Equal(t, 2, spec.Optimization.Level)
	assert.Equal(t, "quantum_enhanced", spec.Optimization.Method)
}

func TestCreateCircuit_UniqueIdentity(t *testing.T) {
	m := testManager(t, 20)

	a, err := m.CreateCircuit([]int{4}, 1)
	require.NoError(t, err)
	b, err := m.CreateCircuit([]int{4}, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateCircuit_InvalidOptimizationLevel(t *testing.T) {
	m := testManager(t, 20)

	for _, level := range []int{0, 4, -1} {
		_, err := m.CreateCircuit([]int{4}, level)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestOptimize_RecordsOrderedSteps(t *testing.T) {
	m := testManager(t, 20)
	spec, err := m.CreateCircuit([]int{4}, 2)
	require.NoError(t, err)

	report, err := m.Optimize(spec, 0.99)
	require.NoError(t, err)

	require.Len(t, report.Steps, 2)
	assert.Equal(t, "gate_reduction", report.Steps[0].Name)
	assert.Equal(t, "layer_merge", report.Steps[1].Name)
	assert.Equal(t, spec.ID, report.CircuitID)

	// Level 2: 20% gate reduction from estimated 20*3 gates
	assert.InDelta(t, 60.0, report.Steps[0].Before, 1e-9)
	assert.InDelta(t, 48.0, report.Steps[0].After, 1e-9)
	assert.Less(t, report.Steps[0].After, report.Steps[0].Before)
}

func TestOptimize_CustomPipeline(t *testing.T) {
	m := testManager(t, 20).WithPasses(LayerMergePass{})
	spec, err := m.CreateCircuit([]int{4}, 3)
	require.NoError(t, err)

	report, err := m.Optimize(spec, 0.95)
	require.NoError(t, err)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, "layer_merge", report.Steps[0].Name)
}

func TestOptimize_InvalidTargetFidelity(t *testing.T) {
	m := testManager(t, 20)
	spec, err := m.CreateCircuit([]int{4}, 1)
	require.NoError(t, err)

	for _, target := range []float64{0, -0.5, 1.5} {
		_, err := m.Optimize(spec, target)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestValidate(t *testing.T) {
	m := testManager(t, 20)
	spec, err := m.CreateCircuit([]int{4}, 1)
	require.NoError(t, err)

	result := m.Validate(spec)
	assert.True(t, result.Valid)
	assert.True(t, result.Checks["qubit_count"])
	assert.True(t, result.Checks["connectivity"])
	assert.True(t, result.Checks["error_rates"])
}

func TestValidate_Failures(t *testing.T) {
	m := testManager(t, 20)

	testCases := []struct {
		name   string
		mutate func(*Spec)
		check  string
	}{
		{"wrong qubit count", func(s *Spec) { s.Qubits = 12 }, "qubit_count"},
		{"bad connectivity", func(s *Spec) { s.Profile.Connectivity = "ring" }, "connectivity"},
		{"threshold too high", func(s *Spec) { s.Profile.ErrorThreshold = 0.5 }, "error_rates"},
		{"threshold not positive", func(s *Spec) { s.Profile.ErrorThreshold = 0 }, "error_rates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := m.CreateCircuit([]int{4}, 1)
			require.NoError(t, err)
			tc.mutate(spec)

			result := m.Validate(spec)
			assert.False(t, result.Valid)
			assert.False(t, result.Checks[tc.check])
		})
	}
}

func TestProfiles(t *testing.T) {
	m := testManager(t, 20)

	learning, ok := m.Profile(ProfileLearning)
	require.True(t, ok)
	assert.Equal(t, 3, learning.Layers)
	assert.InDelta(t, 0.001, learning.ErrorThreshold, 1e-12)

	memory, ok := m.Profile(ProfileMemory)
	require.True(t, ok)
	assert.Equal(t, ConnectivityNearestNeighbor, memory.Connectivity)
	assert.InDelta(t, 0.0005, memory.ErrorThreshold, 1e-12)

	processing, ok := m.Profile(ProfileProcessing)
	require.True(t, ok)
	assert.Equal(t, 4, processing.Layers)
	assert.Equal(t, ConnectivityCustom, processing.Connectivity)

	_, ok = m.Profile("bogus")
	assert.False(t, ok)
}
