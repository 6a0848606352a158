package encoding

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
)

// Result is the outcome of an Encode call. It carries everything Decode
// needs to be a true inverse: the applied protection code, the original
// input length and the original L2 norm.
type Result struct {
	Stamp      string       `json:"timestamp"`
	Method     Method       `json:"-"`
	MethodName string       `json:"method"`
	State      []complex128 `json:"-"`
	QubitsUsed int          `json:"n_qubits_used"`
	Protected  bool         `json:"error_protected"`
	Code       Code         `json:"-"`
	Fidelity   float64      `json:"fidelity"`
	InputLen   int          `json:"input_len"`
	Norm       float64      `json:"input_norm"`
}

// Encoder transforms classical vectors into simulated quantum states under a
// fixed qubit capacity.
type Encoder struct {
	nQubits int
	configs map[Method]Config
	clock   clock.Clock
	audit   audit.Recorder
	log     zerolog.Logger
}

// NewEncoder creates an encoder for the given qubit capacity
func NewEncoder(nQubits int, clk clock.Clock, recorder audit.Recorder, log zerolog.Logger) *Encoder {
	e := &Encoder{
		nQubits: nQubits,
		configs: map[Method]Config{
			MethodAmplitude: {
				Method:           MethodAmplitude,
				Qubits:           nQubits,
				ErrorProtection:  true,
				CompressionRatio: 1.0,
				BasisStates:      []string{"0", "1"},
			},
			MethodPhase: {
				Method:           MethodPhase,
				Qubits:           nQubits,
				ErrorProtection:  true,
				CompressionRatio: 1.0,
				BasisStates:      []string{"+", "-"},
			},
			MethodSuperdense: {
				Method:           MethodSuperdense,
				Qubits:           nQubits / 2, // operates on qubit pairs
				ErrorProtection:  true,
				CompressionRatio: 2.0,
				BasisStates:      []string{"00", "01", "10", "11"},
			},
		},
		clock: clk,
		audit: recorder,
		log:   log.With().Str("component", "encoder").Logger(),
	}

	e.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Quantum encoder initialized", map[string]interface{}{
		"n_qubits": nQubits,
		"methods":  len(e.configs),
	})
	return e
}

// Config returns the configuration of a method
func (e *Encoder) Config(m Method) (Config, error) {
	cfg, ok := e.configs[m]
	if !ok {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidMethod, m)
	}
	return cfg, nil
}

// Encode transforms data into a simulated quantum state vector.
func (e *Encoder) Encode(data []float64, method Method, protect bool) (*Result, error) {
	cfg, ok := e.configs[method]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMethod, method)
	}

	norm := floats.Norm(data, 2)
	if len(data) == 0 || norm == 0 {
		e.audit.Record(audit.CategoryQuantum, audit.LevelError, "Encoding failed", map[string]interface{}{
			"method": method.String(),
			"reason": "zero norm input",
		})
		return nil, fmt.Errorf("%w: input vector has zero norm", ErrInvalidInput)
	}

	normalized := make([]float64, len(data))
	copy(normalized, data)
	floats.Scale(1/norm, normalized)

	var state []complex128
	var err error
	switch method {
	case MethodAmplitude:
		state, err = e.amplitudeEncode(normalized)
	case MethodPhase:
		state, err = e.phaseEncode(normalized)
	case MethodSuperdense:
		state, err = e.superdenseEncode(normalized)
	default:
		err = fmt.Errorf("%w: %v", ErrInvalidMethod, method)
	}
	if err != nil {
		e.audit.Record(audit.CategoryQuantum, audit.LevelError, "Encoding failed", map[string]interface{}{
			"method": method.String(),
			"error":  err.Error(),
		})
		return nil, err
	}

	code := CodeNone
	if protect && cfg.ErrorProtection {
		code = codeForMethod(method)
		state = Expand(code, state)
		renormalize(state)
	}

	fidelity, err := encodingFidelity(normalized, state)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Stamp:      e.clock.Stamp(),
		Method:     method,
		MethodName: method.String(),
		State:      state,
		QubitsUsed: len(state),
		Protected:  code != CodeNone,
		Code:       code,
		Fidelity:   fidelity,
		InputLen:   len(data),
		Norm:       norm,
	}

	e.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Quantum state encoded", map[string]interface{}{
		"method":          method.String(),
		"n_qubits_used":   result.QubitsUsed,
		"error_protected": result.Protected,
		"fidelity":        result.Fidelity,
	})

	return result, nil
}

// Decode inverts an Encode result back to classical data.
func (e *Encoder) Decode(result *Result) ([]float64, error) {
	if result == nil || !result.Method.Valid() {
		return nil, fmt.Errorf("%w: decode target", ErrInvalidMethod)
	}

	state := result.State
	if result.Protected {
		collapsed, err := Collapse(result.Code, state)
		if err != nil {
			e.audit.Record(audit.CategoryQuantum, audit.LevelError, "Decoding failed", map[string]interface{}{
				"method": result.Method.String(),
				"error":  err.Error(),
			})
			return nil, err
		}
		state = collapsed
		renormalize(state)
	}

	var decoded []float64
	switch result.Method {
	case MethodAmplitude:
		decoded = amplitudeDecode(state, result.InputLen, result.Norm)
	case MethodPhase:
		decoded = phaseDecode(state, result.InputLen, result.Norm)
	case MethodSuperdense:
		decoded = superdenseDecode(state)
	}

	e.audit.Record(audit.CategoryQuantum, audit.LevelInfo, "Quantum state decoded", map[string]interface{}{
		"method":   result.Method.String(),
		"fidelity": result.Fidelity,
	})

	return decoded, nil
}

// amplitudeEncode pads the normalized vector to 2^N amplitudes:
// |ψ⟩ = Σᵢ αᵢ|i⟩
func (e *Encoder) amplitudeEncode(normalized []float64) ([]complex128, error) {
	dim := 1 << e.nQubits
	if len(normalized) > dim {
		return nil, fmt.Errorf("%w: %d values exceed %d amplitudes", ErrInvalidInput, len(normalized), dim)
	}
	state := make([]complex128, dim)
	for i, v := range normalized {
		state[i] = complex(v, 0)
	}
	return state, nil
}

// phaseEncode maps each value to a unit-modulus phase:
// |ψ⟩ ∝ Σᵢ e^(2πixᵢ)|i⟩
func (e *Encoder) phaseEncode(normalized []float64) ([]complex128, error) {
	dim := 1 << e.nQubits
	if len(normalized) > dim {
		return nil, fmt.Errorf("%w: %d values exceed %d phases", ErrInvalidInput, len(normalized), dim)
	}
	state := make([]complex128, dim)
	for i, v := range normalized {
		state[i] = cmplx.Exp(complex(0, 2*math.Pi*v))
	}
	return state, nil
}

// superdenseEncode combines up to N/2 values as a cyclic Bell-basis sum over
// a two-qubit state.
func (e *Encoder) superdenseEncode(normalized []float64) ([]complex128, error) {
	nPairs := e.nQubits / 2
	if nPairs < 1 {
		return nil, fmt.Errorf("%w: capacity %d leaves no qubit pairs", ErrInvalidInput, e.nQubits)
	}

	bells := bellVectors()
	state := make([]complex128, 4)
	count := len(normalized)
	if count > nPairs {
		count = nPairs
	}
	for i := 0; i < count; i++ {
		bell := bells[i%4]
		for j := range state {
			state[j] += complex(normalized[i], 0) * bell[j]
		}
	}

	if vectorNorm(state) == 0 {
		return nil, fmt.Errorf("%w: superdense combination collapsed to zero", ErrInvalidInput)
	}
	renormalize(state)
	return state, nil
}

// bellVectors returns the four two-qubit Bell basis vectors
func bellVectors() [4][4]complex128 {
	s := complex(1/math.Sqrt2, 0)
	return [4][4]complex128{
		{s, 0, 0, s},  // |Φ+⟩
		{0, s, s, 0},  // |Ψ+⟩
		{s, 0, 0, -s}, // |Φ−⟩
		{0, s, -s, 0}, // |Ψ−⟩
	}
}

// amplitudeDecode restores the original values from the leading amplitudes
func amplitudeDecode(state []complex128, inputLen int, norm float64) []float64 {
	if inputLen > len(state) {
		inputLen = len(state)
	}
	decoded := make([]float64, inputLen)
	for i := 0; i < inputLen; i++ {
		decoded[i] = real(state[i]) * norm
	}
	return decoded
}

// phaseDecode recovers each value mod 1 from its phase angle, then restores
// scale. Values whose normalized form lies outside [0,1) alias under the
// mod-1 recovery.
func phaseDecode(state []complex128, inputLen int, norm float64) []float64 {
	if inputLen > len(state) {
		inputLen = len(state)
	}
	decoded := make([]float64, inputLen)
	for i := 0; i < inputLen; i++ {
		angle := cmplx.Phase(state[i]) / (2 * math.Pi)
		decoded[i] = math.Mod(angle+1, 1) * norm
	}
	return decoded
}

// superdenseDecode folds the state into a two-qubit vector and projects it
// onto each Bell basis vector, returning the four projection magnitudes.
func superdenseDecode(state []complex128) []float64 {
	folded := make([]complex128, 4)
	for i, amp := range state {
		folded[i%4] += amp
	}

	bells := bellVectors()
	decoded := make([]float64, 4)
	for k, bell := range bells {
		var projection complex128
		for j := range folded {
			projection += folded[j] * cmplx.Conj(bell[j])
		}
		decoded[k] = cmplx.Abs(projection)
	}
	return decoded
}

// encodingFidelity computes |⟨a|b̄⟩|² over equal-length zero-padded unit
// vectors. With both operands unit-norm the value is bounded to [0,1] by
// Cauchy-Schwarz; anything beyond roundoff of that bound is a defect.
func encodingFidelity(normalized []float64, state []complex128) (float64, error) {
	size := len(normalized)
	if len(state) > size {
		size = len(state)
	}

	a := make([]complex128, size)
	for i, v := range normalized {
		a[i] = complex(v, 0)
	}
	b := make([]complex128, size)
	copy(b, state)
	renormalize(b)

	var inner complex128
	for i := range a {
		inner += a[i] * cmplx.Conj(b[i])
	}
	fidelity := real(inner)*real(inner) + imag(inner)*imag(inner)

	const tolerance = 1e-9
	if fidelity < 0 || fidelity > 1+tolerance {
		return 0, fmt.Errorf("fidelity %g outside [0,1]", fidelity)
	}
	if fidelity > 1 {
		// Roundoff against the Cauchy-Schwarz bound only
		fidelity = 1
	}
	return fidelity, nil
}

// vectorNorm returns the L2 norm of a complex vector
func vectorNorm(state []complex128) float64 {
	var sum float64
	for _, amp := range state {
		sum += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return math.Sqrt(sum)
}

// renormalize scales the vector to unit L2 norm in place. A zero vector is
// left untouched.
func renormalize(state []complex128) {
	norm := vectorNorm(state)
	if norm == 0 {
		return
	}
	scale := complex(1/norm, 0)
	for i := range state {
		state[i] *= scale
	}
}
