// Package mitigation holds the simulated error models and applies named
// mitigation strategies to circuit and memory targets.
package mitigation

// Model names, which double as the strategy identifiers accepted by Apply
const (
	ModelDecoherence = "decoherence"
	ModelGateError   = "gate_error"
	ModelMeasurement = "measurement"
)

// Error model categories
const (
	TypeContinuous = "continuous"
	TypeDiscrete   = "discrete"
	TypeReadout    = "readout"
)

// Analysis statuses
const (
	StatusAcceptable      = "acceptable"
	StatusNeedsMitigation = "needs_mitigation"
)

// Model is one error model, scaled to the circuit's qubit capacity
type Model struct {
	Name           string  `json:"name"`
	Rate           float64 `json:"rate"`
	Type           string  `json:"type"`
	AffectedQubits []int   `json:"affected_qubits"`
	Strategy       string  `json:"mitigation_strategy"`
}

// Target identifies what a mitigation pass is applied to: a circuit spec or
// a stored memory state.
type Target struct {
	Kind   string `json:"type"`             // "circuit" or "memory"
	RefID  string `json:"ref_id"`           // circuit or state identity
	Qubits []int  `json:"qubits,omitempty"` // affected qubit indices
}

// StrategyResult is the outcome of applying one mitigation strategy
type StrategyResult struct {
	Model          string `json:"model"`
	Method         string `json:"method"`
	Technique      string `json:"technique"`
	AffectedQubits []int  `json:"affected_qubits"`
	Success        bool   `json:"success"`
}

// Report lists the strategies applied to a target, in request order
type Report struct {
	Stamp   string           `json:"timestamp"`
	Target  Target           `json:"target"`
	Applied []StrategyResult `json:"applied_strategies"`
}

// ModelAnalysis is the per-model outcome of an error-rate analysis
type ModelAnalysis struct {
	CurrentRate float64 `json:"current_rate"`
	Threshold   float64 `json:"threshold"`
	Status      string  `json:"status"`
}

// Analysis reports simulated error rates for every model
type Analysis struct {
	Stamp     string                   `json:"timestamp"`
	CircuitID string                   `json:"circuit_id"`
	Rates     map[string]ModelAnalysis `json:"error_rates"`
}
