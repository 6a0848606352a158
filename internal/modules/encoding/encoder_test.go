package encoding

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
)

func testEncoder(t *testing.T, nQubits int) *Encoder {
	t.Helper()
	clk := clock.Manual(time.Date(2025, 5, 31, 17, 43, 3, 0, time.UTC))
	return NewEncoder(nQubits, clk, audit.NopRecorder{}, zerolog.Nop())
}

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		name     string
		expected Method
		wantErr  bool
	}{
		{"amplitude", MethodAmplitude, false},
		{"phase", MethodPhase, false},
		{"superdense", MethodSuperdense, false},
		{"teleport", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			method, err := ParseMethod(tc.name)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, method)
			assert.Equal(t, tc.name, method.String())
		})
	}
}

func TestAmplitudeEncode_OutputLength(t *testing.T) {
	for _, q := range []int{3, 4, 6, 8} {
		enc := testEncoder(t, q)

		result, err := enc.Encode([]float64{0.5, 0.5, 0.7}, MethodAmplitude, false)
		require.NoError(t, err)

		assert.Len(t, result.State, 1<<q, "qubits=%d", q)
		assert.Equal(t, 1<<q, result.QubitsUsed)
	}
}

func TestAmplitudeRoundTrip(t *testing.T) {
	enc := testEncoder(t, 4)
	input := []float64{1.5, -2.25, 3.0, 0.5}

	result, err := enc.Encode(input, MethodAmplitude, false)
	require.NoError(t, err)

	decoded, err := enc.Decode(result)
	require.NoError(t, err)

	require.Len(t, decoded, len(input))
	for i := range input {
		assert.InDelta(t, input[i], decoded[i], 1e-9)
	}
}

func TestAmplitudeRoundTrip_Protected(t *testing.T) {
	enc := testEncoder(t, 4)
	input := []float64{0.3, 0.1, 0.8, 0.2}

	result, err := enc.Encode(input, MethodAmplitude, true)
	require.NoError(t, err)
	assert.True(t, result.Protected)
	assert.Equal(t, CodeRepetition, result.Code)
	assert.Len(t, result.State, 3*(1<<4))

	decoded, err := enc.Decode(result)
	require.NoError(t, err)

	for i := range input {
		assert.InDelta(t, input[i], decoded[i], 1e-9)
	}
}

func TestPhaseRoundTrip(t *testing.T) {
	enc := testEncoder(t, 4)
	input := []float64{0.1, 0.2, 0.3, 0.4}

	result, err := enc.Encode(input, MethodPhase, false)
	require.NoError(t, err)
	assert.Len(t, result.State, 16)

	decoded, err := enc.Decode(result)
	require.NoError(t, err)

	require.Len(t, decoded, 4)
	for i := range input {
		assert.InDelta(t, input[i], decoded[i], 1e-5)
	}
}

func TestPhaseRoundTrip_Protected(t *testing.T) {
	enc := testEncoder(t, 4)
	input := []float64{0.1, 0.2, 0.3, 0.4}

	result, err := enc.Encode(input, MethodPhase, true)
	require.NoError(t, err)
	assert.Equal(t, CodeShor, result.Code)
	assert.Len(t, result.State, 9*16)

	decoded, err := enc.Decode(result)
	require.NoError(t, err)

	for i := range input {
		assert.InDelta(t, input[i], decoded[i], 1e-5)
	}
}

func TestSuperdenseDecode_ReturnsFourProjections(t *testing.T) {
	enc := testEncoder(t, 4)

	result, err := enc.Encode([]float64{0.1, 0.2, 0.3, 0.4}, MethodSuperdense, false)
	require.NoError(t, err)
	assert.Len(t, result.State, 4)

	decoded, err := enc.Decode(result)
	require.NoError(t, err)
	assert.Len(t, decoded, 4)
}

func TestSuperdenseDecode_Protected(t *testing.T) {
	enc := testEncoder(t, 4)

	result, err := enc.Encode([]float64{0.4, 0.3}, MethodSuperdense, true)
	require.NoError(t, err)
	assert.Equal(t, CodeSteane, result.Code)
	assert.Len(t, result.State, 7*4)

	decoded, err := enc.Decode(result)
	require.NoError(t, err)
	assert.Len(t, decoded, 4)
}

func TestEncode_FidelityWithinBounds(t *testing.T) {
	enc := testEncoder(t, 4)

	testCases := []struct {
		name    string
		data    []float64
		method  Method
		protect bool
	}{
		{"amplitude plain", []float64{0.1, 0.2, 0.3}, MethodAmplitude, false},
		{"amplitude protected", []float64{0.1, 0.2, 0.3}, MethodAmplitude, true},
		{"phase plain", []float64{0.5, 0.25}, MethodPhase, false},
		{"phase protected", []float64{0.5, 0.25}, MethodPhase, true},
		{"superdense", []float64{0.9, 0.1, 0.4, 0.2}, MethodSuperdense, false},
		{"superdense protected", []float64{0.9, 0.1}, MethodSuperdense, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := enc.Encode(tc.data, tc.method, tc.protect)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Fidelity, 0.0)
			assert.LessOrEqual(t, result.Fidelity, 1.0)
		})
	}
}

func TestEncode_UnprotectedAmplitudeFidelityIsOne(t *testing.T) {
	enc := testEncoder(t, 4)

	// Amplitude encoding only zero-pads a normalized vector, so the padded
	// inner product must be exactly the unit norm
	result, err := enc.Encode([]float64{3, 4}, MethodAmplitude, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Fidelity, 1e-12)
}

func TestEncode_ZeroVectorRejected(t *testing.T) {
	enc := testEncoder(t, 4)

	_, err := enc.Encode([]float64{0, 0, 0}, MethodAmplitude, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = enc.Encode(nil, MethodPhase, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEncode_InputLongerThanCapacity(t *testing.T) {
	enc := testEncoder(t, 2) // 4 amplitudes

	data := []float64{1, 2, 3, 4, 5}
	_, err := enc.Encode(data, MethodAmplitude, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEncode_UnknownMethod(t *testing.T) {
	enc := testEncoder(t, 4)

	_, err := enc.Encode([]float64{1}, Method(42), false)
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestDecode_InvalidResult(t *testing.T) {
	enc := testEncoder(t, 4)

	_, err := enc.Decode(nil)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = enc.Decode(&Result{Method: Method(42)})
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestConfig_SuperdenseUsesQubitPairs(t *testing.T) {
	enc := testEncoder(t, 20)

	cfg, err := enc.Config(MethodSuperdense)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Qubits)
	assert.InDelta(t, 2.0, cfg.CompressionRatio, 1e-12)
	assert.Equal(t, []string{"00", "01", "10", "11"}, cfg.BasisStates)
}

func TestExpandCollapse_AllCodes(t *testing.T) {
	state := []complex128{complex(0.6, 0), complex(0, 0.8)}

	for _, code := range []Code{CodeRepetition, CodeShor, CodeSteane} {
		t.Run(code.String(), func(t *testing.T) {
			expanded := Expand(code, state)
			collapsed, err := Collapse(code, expanded)
			require.NoError(t, err)

			require.Len(t, collapsed, len(state))
			for i := range state {
				assert.InDelta(t, real(state[i]), real(collapsed[i]), 1e-12)
				assert.InDelta(t, imag(state[i]), imag(collapsed[i]), 1e-12)
			}
		})
	}
}

func TestCollapse_RejectsMisalignedLength(t *testing.T) {
	_, err := Collapse(CodeRepetition, make([]complex128, 7))
	assert.Error(t, err)
}
