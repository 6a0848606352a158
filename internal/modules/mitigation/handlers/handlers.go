// Package handlers provides HTTP handlers for error mitigation operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
	"github.com/Craig444444444/sped-agi/internal/modules/mitigation"
)

// Handler handles mitigation HTTP requests
type Handler struct {
	system *mitigation.System
	log    zerolog.Logger
}

// NewHandler creates a new mitigation handler
func NewHandler(system *mitigation.System, log zerolog.Logger) *Handler {
	return &Handler{
		system: system,
		log:    log.With().Str("handler", "mitigation").Logger(),
	}
}

// ApplyRequest represents a request to apply mitigation strategies
type ApplyRequest struct {
	Target     mitigation.Target `json:"target"`
	Strategies []string          `json:"strategies,omitempty"`
}

// AnalyzeRequest represents a request to analyze circuit error rates
type AnalyzeRequest struct {
	Circuit circuit.Spec `json:"circuit"`
}

// HandleApply handles POST /api/mitigation/apply
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report := h.system.Apply(req.Target, req.Strategies...)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": report})
}

// HandleAnalyze handles POST /api/mitigation/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	analysis := h.system.Analyze(&req.Circuit)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": analysis})
}

// HandleModels handles GET /api/mitigation/models
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": h.system.Models()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
