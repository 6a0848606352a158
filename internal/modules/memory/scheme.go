// Package memory stores encoded quantum states, allocates qubit indices
// against the circuit manager's capacity, and simulates fidelity decay over
// real elapsed time.
package memory

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/Craig444444444/sped-agi/internal/modules/encoding"
)

// ErrInvalidScheme signals an unknown memory encoding scheme identifier.
var ErrInvalidScheme = errors.New("unknown encoding scheme")

// ErrNotFound signals a reference to a non-existent state ID.
var ErrNotFound = errors.New("state not found")

// ErrCapacityExceeded signals a qubit allocation beyond the declared
// capacity.
var ErrCapacityExceeded = errors.New("qubit capacity exceeded")

// Scheme is a memory encoding scheme
type Scheme int

const (
	// SchemeDirect stores the unit-normalized vector as-is
	SchemeDirect Scheme = iota
	// SchemeCompressed packs adjacent value pairs into complex amplitudes,
	// halving the footprint without losing information
	SchemeCompressed
	// SchemeErrorProtected applies the 3x repetition code
	SchemeErrorProtected
)

// String returns the scheme's wire name
func (s Scheme) String() string {
	switch s {
	case SchemeDirect:
		return "direct"
	case SchemeCompressed:
		return "compressed"
	case SchemeErrorProtected:
		return "error_protected"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// Valid reports whether s is a known scheme
func (s Scheme) Valid() bool {
	switch s {
	case SchemeDirect, SchemeCompressed, SchemeErrorProtected:
		return true
	}
	return false
}

// ParseScheme maps a wire name to a Scheme
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "direct":
		return SchemeDirect, nil
	case "compressed":
		return SchemeCompressed, nil
	case "error_protected":
		return SchemeErrorProtected, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScheme, name)
	}
}

// encodeScheme normalizes data and applies the scheme transform, returning
// the state vector and the original norm needed to invert it.
func encodeScheme(scheme Scheme, data []float64) ([]complex128, float64, error) {
	norm := floats.Norm(data, 2)
	if len(data) == 0 || norm == 0 {
		return nil, 0, fmt.Errorf("%w: input vector has zero norm", encoding.ErrInvalidInput)
	}

	normalized := make([]float64, len(data))
	copy(normalized, data)
	floats.Scale(1/norm, normalized)

	switch scheme {
	case SchemeDirect:
		state := make([]complex128, len(normalized))
		for i, v := range normalized {
			state[i] = complex(v, 0)
		}
		return state, norm, nil

	case SchemeCompressed:
		// Real/imaginary packing: two classical values per amplitude
		state := make([]complex128, (len(normalized)+1)/2)
		for i := range state {
			re := normalized[2*i]
			im := 0.0
			if 2*i+1 < len(normalized) {
				im = normalized[2*i+1]
			}
			state[i] = complex(re, im)
		}
		return state, norm, nil

	case SchemeErrorProtected:
		state := make([]complex128, len(normalized))
		for i, v := range normalized {
			state[i] = complex(v, 0)
		}
		return encoding.Expand(encoding.CodeRepetition, state), norm, nil

	default:
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidScheme, scheme)
	}
}

// decodeScheme is the exact inverse of encodeScheme for clean states
func decodeScheme(scheme Scheme, state []complex128, inputLen int, norm float64) ([]float64, error) {
	switch scheme {
	case SchemeDirect:
		decoded := make([]float64, inputLen)
		for i := 0; i < inputLen && i < len(state); i++ {
			decoded[i] = real(state[i]) * norm
		}
		return decoded, nil

	case SchemeCompressed:
		decoded := make([]float64, inputLen)
		for i := 0; i < inputLen; i++ {
			amp := state[i/2]
			if i%2 == 0 {
				decoded[i] = real(amp) * norm
			} else {
				decoded[i] = imag(amp) * norm
			}
		}
		return decoded, nil

	case SchemeErrorProtected:
		collapsed, err := encoding.Collapse(encoding.CodeRepetition, state)
		if err != nil {
			return nil, err
		}
		decoded := make([]float64, inputLen)
		for i := 0; i < inputLen && i < len(collapsed); i++ {
			decoded[i] = real(collapsed[i]) * norm
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheme, scheme)
	}
}
