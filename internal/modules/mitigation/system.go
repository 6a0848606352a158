package mitigation

import (
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
)

// RateEstimator derives the current simulated error rate of a model.
// Implementations may inspect the circuit spec; the default estimator does
// not and simply scales the nominal rate.
type RateEstimator interface {
	Estimate(model Model, spec *circuit.Spec) float64
}

// FixedImprovementEstimator is the default mock estimator: the current rate
// is the nominal rate scaled by a fixed improvement factor. Replace with a
// real estimator via WithEstimator when one exists.
type FixedImprovementEstimator struct {
	Factor float64
}

// Estimate implements RateEstimator
func (e FixedImprovementEstimator) Estimate(model Model, _ *circuit.Spec) float64 {
	return model.Rate * e.Factor
}

// System holds the error models and applies mitigation strategies
type System struct {
	circuits  *circuit.Manager
	models    map[string]Model
	order     []string // deterministic default application order
	estimator RateEstimator
	clock     clock.Clock
	audit     audit.Recorder
	log       zerolog.Logger
}

// NewSystem creates an error mitigation system scaled to the circuit
// manager's qubit capacity
func NewSystem(circuits *circuit.Manager, clk clock.Clock, recorder audit.Recorder, log zerolog.Logger) *System {
	allQubits := make([]int, circuits.Qubits())
	for i := range allQubits {
		allQubits[i] = i
	}

	s := &System{
		circuits: circuits,
		models: map[string]Model{
			ModelDecoherence: {
				Name:           ModelDecoherence,
				Rate:           0.001,
				Type:           TypeContinuous,
				AffectedQubits: allQubits,
				Strategy:       "dynamical_decoupling",
			},
			ModelGateError: {
				Name:           ModelGateError,
				Rate:           0.0005,
				Type:           TypeDiscrete,
				AffectedQubits: allQubits,
				Strategy:       "gate_optimization",
			},
			ModelMeasurement: {
				Name:           ModelMeasurement,
				Rate:           0.002,
				Type:           TypeReadout,
				AffectedQubits: allQubits,
				Strategy:       "readout_error_mitigation",
			},
		},
		order:     []string{ModelDecoherence, ModelGateError, ModelMeasurement},
		estimator: FixedImprovementEstimator{Factor: 0.9},
		clock:     clk,
		audit:     recorder,
		log:       log.With().Str("component", "error_mitigation").Logger(),
	}

	s.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Error mitigation system initialized", map[string]interface{}{
		"models":   len(s.models),
		"n_qubits": circuits.Qubits(),
	})
	return s
}

// WithEstimator replaces the rate estimator
func (s *System) WithEstimator(estimator RateEstimator) *System {
	s.estimator = estimator
	return s
}

// Models returns the configured error models
func (s *System) Models() []Model {
	models := make([]Model, 0, len(s.order))
	for _, name := range s.order {
		models = append(models, s.models[name])
	}
	return models
}

// Apply runs the requested mitigation strategies against the target. With no
// strategies given, all models are applied in their default order. Unknown
// strategy names are skipped, not rejected; the skip is recorded in the
// audit trail so it stays observable.
func (s *System) Apply(target Target, strategies ...string) *Report {
	if len(strategies) == 0 {
		strategies = s.order
	}

	report := &Report{
		Stamp:   s.clock.Stamp(),
		Target:  target,
		Applied: make([]StrategyResult, 0, len(strategies)),
	}

	for _, name := range strategies {
		model, ok := s.models[name]
		if !ok {
			s.audit.Record(audit.CategoryQuantum, audit.LevelWarning, "Unknown mitigation strategy skipped", map[string]interface{}{
				"strategy": name,
				"target":   target.Kind,
			})
			continue
		}
		report.Applied = append(report.Applied, s.applyStrategy(target, model))
	}

	s.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Error mitigation applied", map[string]interface{}{
		"target":  target.Kind,
		"ref_id":  target.RefID,
		"applied": len(report.Applied),
	})

	return report
}

// applyStrategy executes the mitigation technique assigned to the model
func (s *System) applyStrategy(target Target, model Model) StrategyResult {
	qubits := target.Qubits
	if len(qubits) == 0 {
		qubits = model.AffectedQubits
	}

	result := StrategyResult{
		Model:          model.Name,
		AffectedQubits: qubits,
	}

	switch model.Strategy {
	case "dynamical_decoupling":
		result.Method = "dynamical_decoupling"
		result.Technique = "CPMG" // Carr-Purcell-Meiboom-Gill pulse sequence
		result.Success = true
	case "gate_optimization":
		result.Method = "gate_optimization"
		result.Technique = "pulse_shaping"
		result.Success = true
	case "readout_error_mitigation":
		result.Method = "readout_mitigation"
		result.Technique = "symmetric_calibration"
		result.Success = true
	}

	return result
}

// Analyze reports the current simulated error rate of every model against
// its nominal threshold.
func (s *System) Analyze(spec *circuit.Spec) *Analysis {
	analysis := &Analysis{
		Stamp:     s.clock.Stamp(),
		CircuitID: spec.ID,
		Rates:     make(map[string]ModelAnalysis, len(s.models)),
	}

	for name, model := range s.models {
		current := s.estimator.Estimate(model, spec)
		status := StatusAcceptable
		if current > model.Rate {
			status = StatusNeedsMitigation
		}
		analysis.Rates[name] = ModelAnalysis{
			CurrentRate: current,
			Threshold:   model.Rate,
			Status:      status,
		}
	}

	s.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Error rate analysis completed", map[string]interface{}{
		"circuit_id": spec.ID,
		"models":     len(analysis.Rates),
	})

	return analysis
}
