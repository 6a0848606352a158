// Package encoding transforms classical numeric vectors into simulated
// quantum state vectors and back.
//
// Methods and error-protection codes are closed enums so an unhandled
// identifier cannot slip through at runtime; unknown names are rejected at
// the parsing boundary.
package encoding

import (
	"errors"
	"fmt"
)

// ErrInvalidMethod signals an unknown encoding method identifier.
var ErrInvalidMethod = errors.New("unknown encoding method")

// ErrInvalidInput signals degenerate numeric input, such as a zero vector
// where unit normalization is required.
var ErrInvalidInput = errors.New("invalid input data")

// Method is a quantum encoding method
type Method int

const (
	MethodAmplitude Method = iota
	MethodPhase
	MethodSuperdense
)

// String returns the method's wire name
func (m Method) String() string {
	switch m {
	case MethodAmplitude:
		return "amplitude"
	case MethodPhase:
		return "phase"
	case MethodSuperdense:
		return "superdense"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Valid reports whether m is a known method
func (m Method) Valid() bool {
	switch m {
	case MethodAmplitude, MethodPhase, MethodSuperdense:
		return true
	}
	return false
}

// ParseMethod maps a wire name to a Method
func ParseMethod(name string) (Method, error) {
	switch name {
	case "amplitude":
		return MethodAmplitude, nil
	case "phase":
		return MethodPhase, nil
	case "superdense":
		return MethodSuperdense, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, name)
	}
}

// Config is the immutable configuration of one encoding method
type Config struct {
	Method           Method   `json:"method"`
	Qubits           int      `json:"n_qubits"`
	ErrorProtection  bool     `json:"error_protection"`
	CompressionRatio float64  `json:"compression_ratio"`
	BasisStates      []string `json:"basis_states"`
}
