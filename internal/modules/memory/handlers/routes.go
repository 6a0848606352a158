package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all memory routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/memory", func(r chi.Router) {
		r.Post("/states", h.HandleStore)
		r.Get("/states", h.HandleList)
		r.Get("/states/{id}", h.HandleRetrieve)
		r.Post("/monitor", h.HandleMonitor)
	})
}
