package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all encoding routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/encoding", func(r chi.Router) {
		r.Post("/encode", h.HandleEncode)
		r.Post("/decode", h.HandleDecode)
	})
}
