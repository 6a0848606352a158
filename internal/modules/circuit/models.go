// Package circuit manages simulated quantum circuit specifications.
//
// A Manager owns the declared qubit capacity and the fixed configuration
// profiles, and produces, optimizes and validates circuit specifications.
package circuit

import "errors"

// ErrInvalidConfiguration signals malformed circuit parameters such as an
// unsupported optimization level.
var ErrInvalidConfiguration = errors.New("invalid circuit configuration")

// Connectivity describes how qubits in a circuit are coupled
type Connectivity string

const (
	ConnectivityAllToAll        Connectivity = "all-to-all"
	ConnectivityNearestNeighbor Connectivity = "nearest-neighbor"
	ConnectivityCustom          Connectivity = "custom"
)

// Valid reports whether the connectivity is one of the supported topologies
func (c Connectivity) Valid() bool {
	switch c {
	case ConnectivityAllToAll, ConnectivityNearestNeighbor, ConnectivityCustom:
		return true
	}
	return false
}

// Profile names
const (
	ProfileLearning   = "learning"
	ProfileMemory     = "memory"
	ProfileProcessing = "processing"
)

// Profile is a fixed circuit configuration profile
type Profile struct {
	Name           string       `json:"name"`
	Layers         int          `json:"layers"`
	Connectivity   Connectivity `json:"connectivity"`
	ErrorThreshold float64      `json:"error_threshold"`
}

// Optimization carries the optimization parameters of a circuit spec
type Optimization struct {
	Level  int    `json:"level"`
	Method string `json:"method"`
}

// Spec is a circuit specification. Identity is a stable UUID assigned at
// construction time; it never depends on the value's memory address.
type Spec struct {
	ID           string         `json:"id"`
	CreatedAt    string         `json:"created_at"`
	Type         string         `json:"type"`
	Qubits       int            `json:"n_qubits"`
	InputShape   []int          `json:"input_shape"`
	Profile      Profile        `json:"config"`
	Optimization Optimization   `json:"optimization"`
	GateCounts   map[string]int `json:"gate_counts,omitempty"`
}

// TotalGates sums the gate-count annotations of the spec
func (s *Spec) TotalGates() int {
	total := 0
	for _, n := range s.GateCounts {
		total += n
	}
	return total
}

// OptimizationStep records one pass of the optimization pipeline
type OptimizationStep struct {
	Name   string  `json:"step"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// OptimizationReport is the outcome of running the optimization pipeline
type OptimizationReport struct {
	Stamp          string             `json:"timestamp"`
	CircuitID      string             `json:"circuit_id"`
	TargetFidelity float64            `json:"target_fidelity"`
	Steps          []OptimizationStep `json:"optimization_steps"`
}

// ValidationResult holds per-check booleans and the overall verdict
type ValidationResult struct {
	Stamp     string          `json:"timestamp"`
	CircuitID string          `json:"circuit_id"`
	Checks    map[string]bool `json:"checks"`
	Valid     bool            `json:"valid"`
}
