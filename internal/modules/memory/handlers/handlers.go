// Package handlers provides HTTP handlers for quantum memory operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/encoding"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
)

// Handler handles memory HTTP requests
type Handler struct {
	service *memory.Service
	clock   clock.Clock
	log     zerolog.Logger
}

// NewHandler creates a new memory handler
func NewHandler(service *memory.Service, clk clock.Clock, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		clock:   clk,
		log:     log.With().Str("handler", "memory").Logger(),
	}
}

// StoreRequest represents a request to store a classical vector
type StoreRequest struct {
	Data     []float64         `json:"data"`
	Scheme   string            `json:"encoding_scheme,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HandleStore handles POST /api/memory/states
func (h *Handler) HandleStore(w http.ResponseWriter, r *http.Request) {
	var req StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	scheme := memory.SchemeErrorProtected
	if req.Scheme != "" {
		var err error
		scheme, err = memory.ParseScheme(req.Scheme)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	id, err := h.service.Store(req.Data, scheme, req.Metadata)
	if err != nil {
		switch {
		case errors.Is(err, memory.ErrCapacityExceeded):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, encoding.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.log.Error().Err(err).Msg("State storage failed")
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": map[string]interface{}{"state_id": id},
	})
}

// HandleRetrieve handles GET /api/memory/states/{id}
func (h *Handler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	decoded, err := h.service.Retrieve(id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("state_id", id).Msg("State retrieval failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"state_id": id,
			"decoded":  decoded,
		},
	})
}

// HandleList handles GET /api/memory/states
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.service.Summaries(),
	})
}

// HandleMonitor handles POST /api/memory/monitor. Monitoring advances the
// decay model, so it is a POST, not a GET.
func (h *Handler) HandleMonitor(w http.ResponseWriter, r *http.Request) {
	fidelities := h.service.MonitorFidelity()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"timestamp":  h.clock.Stamp(),
			"fidelities": fidelities,
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
