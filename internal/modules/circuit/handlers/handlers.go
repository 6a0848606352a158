// Package handlers provides HTTP handlers for circuit operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
)

// Handler handles circuit HTTP requests
type Handler struct {
	manager *circuit.Manager
	log     zerolog.Logger
}

// NewHandler creates a new circuit handler
func NewHandler(manager *circuit.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		manager: manager,
		log:     log.With().Str("handler", "circuit").Logger(),
	}
}

// CreateRequest represents a request to create a learning circuit
type CreateRequest struct {
	InputShape        []int `json:"input_shape"`
	OptimizationLevel int   `json:"optimization_level"`
}

// OptimizeRequest represents a request to optimize a circuit spec
type OptimizeRequest struct {
	Circuit        circuit.Spec `json:"circuit"`
	TargetFidelity float64      `json:"target_fidelity"`
}

// ValidateRequest represents a request to validate a circuit spec
type ValidateRequest struct {
	Circuit circuit.Spec `json:"circuit"`
}

// HandleCreate handles POST /api/circuits
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	spec, err := h.manager.CreateCircuit(req.InputShape, req.OptimizationLevel)
	if err != nil {
		if errors.Is(err, circuit.ErrInvalidConfiguration) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Circuit creation failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"data": spec})
}

// HandleOptimize handles POST /api/circuits/optimize
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.manager.Optimize(&req.Circuit, req.TargetFidelity)
	if err != nil {
		if errors.Is(err, circuit.ErrInvalidConfiguration) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Circuit optimization failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"circuit": req.Circuit,
			"report":  report,
		},
	})
}

// HandleValidate handles POST /api/circuits/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.manager.Validate(&req.Circuit)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": result})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
