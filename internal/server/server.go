// Package server provides the HTTP server and routing for the quantum
// simulation core.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/config"
	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
	circuithandlers "github.com/Craig444444444/sped-agi/internal/modules/circuit/handlers"
	"github.com/Craig444444444/sped-agi/internal/modules/encoding"
	encodinghandlers "github.com/Craig444444444/sped-agi/internal/modules/encoding/handlers"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
	memoryhandlers "github.com/Craig444444444/sped-agi/internal/modules/memory/handlers"
	"github.com/Craig444444444/sped-agi/internal/modules/mitigation"
	mitigationhandlers "github.com/Craig444444444/sped-agi/internal/modules/mitigation/handlers"
	"github.com/Craig444444444/sped-agi/internal/modules/snapshots"
	snapshothandlers "github.com/Craig444444444/sped-agi/internal/modules/snapshots/handlers"
)

// Config holds server configuration
type Config struct {
	Log        zerolog.Logger
	Cfg        *config.Config
	Clock      clock.Clock
	Circuits   *circuit.Manager
	Encoder    *encoding.Encoder
	Mitigation *mitigation.System
	Memory     *memory.Service
	Snapshots  *snapshots.Repository
	AuditStore *audit.Store
	Stream     *FidelityStreamHandler
}

// Server represents the HTTP server
type Server struct {
	router chi.Router
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	systemHandlers := NewSystemHandlers(cfg.Log, cfg.Cfg, cfg.Memory, cfg.AuditStore)

	router.Get("/health", systemHandlers.HandleHealth)

	router.Route("/api", func(r chi.Router) {
		circuithandlers.NewHandler(cfg.Circuits, cfg.Log).RegisterRoutes(r)
		encodinghandlers.NewHandler(cfg.Encoder, cfg.Log).RegisterRoutes(r)
		mitigationhandlers.NewHandler(cfg.Mitigation, cfg.Log).RegisterRoutes(r)
		memoryhandlers.NewHandler(cfg.Memory, cfg.Clock, cfg.Log).RegisterRoutes(r)
		snapshothandlers.NewHandler(cfg.Snapshots, cfg.Log).RegisterRoutes(r)

		r.Get("/system/status", systemHandlers.HandleStatus)
		r.Get("/system/audit", systemHandlers.HandleAuditEvents)

		if cfg.Stream != nil {
			r.Get("/memory/fidelity/ws", cfg.Stream.ServeHTTP)
		}
	})

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: cfg.Log.With().Str("component", "server").Logger(),
	}
}

// Router returns the chi router, used by tests
func (s *Server) Router() chi.Router {
	return s.router
}

// Start begins serving HTTP requests, blocking until shutdown
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
