package circuit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
)

// MaxErrorThreshold is the upper bound accepted by spec validation.
const MaxErrorThreshold = 0.01

// Manager produces and validates circuit specifications against a declared
// qubit capacity.
type Manager struct {
	nQubits  int
	profiles map[string]Profile
	passes   []Pass
	clock    clock.Clock
	audit    audit.Recorder
	log      zerolog.Logger
}

// NewManager creates a circuit manager with the three fixed profiles
func NewManager(nQubits int, clk clock.Clock, recorder audit.Recorder, log zerolog.Logger) *Manager {
	m := &Manager{
		nQubits: nQubits,
		profiles: map[string]Profile{
			ProfileLearning: {
				Name:           ProfileLearning,
				Layers:         3,
				Connectivity:   ConnectivityAllToAll,
				ErrorThreshold: 0.001,
			},
			ProfileMemory: {
				Name:           ProfileMemory,
				Layers:         2,
				Connectivity:   ConnectivityNearestNeighbor,
				ErrorThreshold: 0.0005,
			},
			ProfileProcessing: {
				Name:           ProfileProcessing,
				Layers:         4,
				Connectivity:   ConnectivityCustom,
				ErrorThreshold: 0.002,
			},
		},
		passes: DefaultPasses(),
		clock:  clk,
		audit:  recorder,
		log:    log.With().Str("component", "circuit_manager").Logger(),
	}

	m.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Circuit system initialized", map[string]interface{}{
		"n_qubits": nQubits,
		"profiles": len(m.profiles),
	})
	return m
}

// WithPasses replaces the optimization pipeline. Passes run in order.
func (m *Manager) WithPasses(passes ...Pass) *Manager {
	m.passes = passes
	return m
}

// Qubits returns the declared qubit capacity
func (m *Manager) Qubits() int {
	return m.nQubits
}

// Profile returns a configuration profile by name
func (m *Manager) Profile(name string) (Profile, bool) {
	p, ok := m.profiles[name]
	return p, ok
}

// CreateCircuit builds a learning circuit spec for the given input shape.
// Optimization level must be 1, 2 or 3.
func (m *Manager) CreateCircuit(inputShape []int, optimizationLevel int) (*Spec, error) {
	if optimizationLevel < 1 || optimizationLevel > 3 {
		return nil, fmt.Errorf("%w: optimization level %d outside 1..3", ErrInvalidConfiguration, optimizationLevel)
	}

	spec := &Spec{
		ID:         uuid.New().String(),
		CreatedAt:  m.clock.Stamp(),
		Type:       ProfileLearning,
		Qubits:     m.nQubits,
		InputShape: append([]int(nil), inputShape...),
		Profile:    m.profiles[ProfileLearning],
		Optimization: Optimization{
			Level:  optimizationLevel,
			Method: "quantum_enhanced",
		},
	}

	m.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Learning circuit created", map[string]interface{}{
		"circuit_id":  spec.ID,
		"n_qubits":    spec.Qubits,
		"input_shape": spec.InputShape,
		"level":       optimizationLevel,
	})

	return spec, nil
}

// Optimize runs the configured optimization pipeline against the spec and
// returns the ordered step records.
func (m *Manager) Optimize(spec *Spec, targetFidelity float64) (*OptimizationReport, error) {
	if targetFidelity <= 0 || targetFidelity > 1 {
		return nil, fmt.Errorf("%w: target fidelity %f outside (0,1]", ErrInvalidConfiguration, targetFidelity)
	}

	report := &OptimizationReport{
		Stamp:          m.clock.Stamp(),
		CircuitID:      spec.ID,
		TargetFidelity: targetFidelity,
		Steps:          make([]OptimizationStep, 0, len(m.passes)),
	}

	for _, pass := range m.passes {
		before, after := pass.Apply(spec)
		report.Steps = append(report.Steps, OptimizationStep{
			Name:   pass.Name(),
			Before: before,
			After:  after,
		})
	}

	m.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Circuit optimization completed", map[string]interface{}{
		"circuit_id":      spec.ID,
		"target_fidelity": targetFidelity,
		"steps":           len(report.Steps),
	})

	return report, nil
}

// Validate checks the spec against the manager's capacity and the supported
// topologies. Overall validity is the conjunction of every check.
func (m *Manager) Validate(spec *Spec) *ValidationResult {
	checks := map[string]bool{
		"qubit_count":  spec.Qubits == m.nQubits,
		"connectivity": spec.Profile.Connectivity.Valid(),
		"error_rates":  spec.Profile.ErrorThreshold > 0 && spec.Profile.ErrorThreshold <= MaxErrorThreshold,
	}

	valid := true
	for _, ok := range checks {
		valid = valid && ok
	}

	result := &ValidationResult{
		Stamp:     m.clock.Stamp(),
		CircuitID: spec.ID,
		Checks:    checks,
		Valid:     valid,
	}

	m.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Circuit validation completed", map[string]interface{}{
		"circuit_id": spec.ID,
		"valid":      valid,
	})

	return result
}
