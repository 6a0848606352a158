// Package handlers provides HTTP handlers for encode/decode operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/modules/encoding"
)

// Handler handles encoding HTTP requests
type Handler struct {
	encoder *encoding.Encoder
	log     zerolog.Logger
}

// NewHandler creates a new encoding handler
func NewHandler(encoder *encoding.Encoder, log zerolog.Logger) *Handler {
	return &Handler{
		encoder: encoder,
		log:     log.With().Str("handler", "encoding").Logger(),
	}
}

// EncodeRequest represents a request to encode a classical vector
type EncodeRequest struct {
	Data    []float64 `json:"data"`
	Method  string    `json:"method"`
	Protect bool      `json:"error_protection"`
}

// EncodedState is the wire form of an encode result. Complex amplitudes are
// serialized as [real, imaginary] pairs.
type EncodedState struct {
	Timestamp  string       `json:"timestamp"`
	Method     string       `json:"method"`
	State      [][2]float64 `json:"state_vector"`
	QubitsUsed int          `json:"n_qubits_used"`
	Protected  bool         `json:"error_protected"`
	Code       string       `json:"protection_code"`
	Fidelity   float64      `json:"fidelity"`
	InputLen   int          `json:"input_len"`
	InputNorm  float64      `json:"input_norm"`
}

// HandleEncode handles POST /api/encoding/encode
func (h *Handler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	method, err := encoding.ParseMethod(req.Method)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.encoder.Encode(req.Data, method, req.Protect)
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Encoding failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": toWire(result)})
}

// HandleDecode handles POST /api/encoding/decode
func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req EncodedState
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := fromWire(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decoded, err := h.encoder.Decode(result)
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidMethod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Decoding failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"method":  req.Method,
			"decoded": decoded,
		},
	})
}

// toWire converts an encode result to its JSON representation
func toWire(result *encoding.Result) *EncodedState {
	state := make([][2]float64, len(result.State))
	for i, amp := range result.State {
		state[i] = [2]float64{real(amp), imag(amp)}
	}
	return &EncodedState{
		Timestamp:  result.Stamp,
		Method:     result.Method.String(),
		State:      state,
		QubitsUsed: result.QubitsUsed,
		Protected:  result.Protected,
		Code:       result.Code.String(),
		Fidelity:   result.Fidelity,
		InputLen:   result.InputLen,
		InputNorm:  result.Norm,
	}
}

// fromWire rebuilds an encode result from its JSON representation
func fromWire(wire *EncodedState) (*encoding.Result, error) {
	method, err := encoding.ParseMethod(wire.Method)
	if err != nil {
		return nil, err
	}
	code, err := encoding.ParseCode(wire.Code)
	if err != nil {
		return nil, err
	}

	state := make([]complex128, len(wire.State))
	for i, pair := range wire.State {
		state[i] = complex(pair[0], pair[1])
	}

	return &encoding.Result{
		Stamp:      wire.Timestamp,
		Method:     method,
		MethodName: wire.Method,
		State:      state,
		QubitsUsed: wire.QubitsUsed,
		Protected:  wire.Protected,
		Code:       code,
		Fidelity:   wire.Fidelity,
		InputLen:   wire.InputLen,
		Norm:       wire.InputNorm,
	}, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
