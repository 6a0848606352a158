package encoding

import "fmt"

// Code is a reversible error-protection expansion. The codes are
// illustrative stand-ins for real quantum error-correcting codes: they
// reproduce the qubit-count expansion of the code they are named after, not
// its syndrome structure.
type Code int

const (
	// CodeNone applies no protection
	CodeNone Code = iota
	// CodeRepetition repeats each amplitude 3 times (3-qubit repetition code)
	CodeRepetition
	// CodeShor tiles the full vector 9 times (Shor 9-qubit code)
	CodeShor
	// CodeSteane tiles the full vector 7 times (Steane [[7,1,3]] code)
	CodeSteane
)

// String returns the code's wire name
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeRepetition:
		return "repetition"
	case CodeShor:
		return "shor"
	case CodeSteane:
		return "steane"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// ParseCode maps a wire name to a Code
func ParseCode(name string) (Code, error) {
	switch name {
	case "none", "":
		return CodeNone, nil
	case "repetition":
		return CodeRepetition, nil
	case "shor":
		return CodeShor, nil
	case "steane":
		return CodeSteane, nil
	default:
		return 0, fmt.Errorf("unknown protection code %q", name)
	}
}

// codeForMethod selects the protection code a method uses
func codeForMethod(m Method) Code {
	switch m {
	case MethodAmplitude:
		return CodeRepetition
	case MethodPhase:
		return CodeShor
	default:
		return CodeSteane
	}
}

// Expand applies the protection code to the state vector. Repetition
// replicates each element in place; Shor and Steane tile the whole vector.
// The result is not renormalized here.
func Expand(code Code, state []complex128) []complex128 {
	switch code {
	case CodeRepetition:
		out := make([]complex128, 0, len(state)*3)
		for _, amp := range state {
			out = append(out, amp, amp, amp)
		}
		return out
	case CodeShor:
		return tile(state, 9)
	case CodeSteane:
		return tile(state, 7)
	default:
		return state
	}
}

// Collapse inverts Expand by averaging each replica group. For a clean state
// this is exact; for a perturbed state the average is the least-squares
// estimate of the protected amplitude, the continuous analog of a
// majority vote.
func Collapse(code Code, state []complex128) ([]complex128, error) {
	switch code {
	case CodeRepetition:
		return averageBlocks(state, 3)
	case CodeShor:
		return averageTiles(state, 9)
	case CodeSteane:
		return averageTiles(state, 7)
	case CodeNone:
		return state, nil
	default:
		return nil, fmt.Errorf("unknown protection code %d", int(code))
	}
}

func tile(state []complex128, n int) []complex128 {
	out := make([]complex128, 0, len(state)*n)
	for i := 0; i < n; i++ {
		out = append(out, state...)
	}
	return out
}

// averageBlocks averages contiguous blocks of size n (inverse of per-element
// replication)
func averageBlocks(state []complex128, n int) ([]complex128, error) {
	if len(state)%n != 0 {
		return nil, fmt.Errorf("protected state length %d is not a multiple of %d", len(state), n)
	}
	out := make([]complex128, len(state)/n)
	for i := range out {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += state[i*n+j]
		}
		out[i] = sum / complex(float64(n), 0)
	}
	return out, nil
}

// averageTiles averages the n full-vector tiles elementwise (inverse of
// tiling)
func averageTiles(state []complex128, n int) ([]complex128, error) {
	if len(state)%n != 0 {
		return nil, fmt.Errorf("protected state length %d is not a multiple of %d", len(state), n)
	}
	size := len(state) / n
	out := make([]complex128, size)
	for i := 0; i < size; i++ {
		var sum complex128
		for k := 0; k < n; k++ {
			sum += state[k*size+i]
		}
		out[i] = sum / complex(float64(n), 0)
	}
	return out, nil
}
