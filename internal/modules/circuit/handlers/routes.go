package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all circuit routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/circuits", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Post("/optimize", h.HandleOptimize)
		r.Post("/validate", h.HandleValidate)
	})
}
