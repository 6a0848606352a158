package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all mitigation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mitigation", func(r chi.Router) {
		r.Post("/apply", h.HandleApply)
		r.Post("/analyze", h.HandleAnalyze)
		r.Get("/models", h.HandleModels)
	})
}
