// Package main is the entry point for the quantum simulation core. The
// application simulates a classical-to-quantum data pipeline: circuit
// construction and optimization, state encoding, error mitigation and a
// fidelity-tracked quantum memory, exposed over an HTTP API.
//
// Startup sequence:
// 1. Load configuration from environment variables
// 2. Initialize structured logging
// 3. Open the audit and archive databases
// 4. Wire the quantum subsystems (circuits, encoder, mitigation, memory)
// 5. Start the background scheduler (fidelity monitor, state snapshots)
// 6. Start the HTTP server and wait for a shutdown signal
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/config"
	"github.com/Craig444444444/sped-agi/internal/database"
	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
	"github.com/Craig444444444/sped-agi/internal/modules/encoding"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
	"github.com/Craig444444444/sped-agi/internal/modules/mitigation"
	"github.com/Craig444444444/sped-agi/internal/modules/snapshots"
	"github.com/Craig444444444/sped-agi/internal/scheduler"
	"github.com/Craig444444444/sped-agi/internal/server"
	"github.com/Craig444444444/sped-agi/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Int("qubit_capacity", cfg.QubitCapacity).
		Str("data_dir", cfg.DataDir).
		Msg("Starting quantum simulation core")

	clk := clock.System()

	// Databases: the audit trail favours durability, the snapshot archive
	// favours throughput.
	auditDB, err := database.New(database.Config{
		Path:    cfg.AuditDBPath(),
		Profile: database.ProfileAudit,
		Name:    "audit",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open audit database")
	}
	defer auditDB.Close()

	archiveDB, err := database.New(database.Config{
		Path:    cfg.ArchiveDBPath(),
		Profile: database.ProfileArchive,
		Name:    "archive",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open archive database")
	}
	defer archiveDB.Close()

	auditStore, err := audit.NewStore(auditDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audit store")
	}
	recorder := audit.NewRecorder(clk, log).WithStore(auditStore)

	snapshotRepo, err := snapshots.NewRepository(archiveDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot repository")
	}

	// Quantum subsystems share the configured qubit capacity
	circuits := circuit.NewManager(cfg.QubitCapacity, clk, recorder, log)
	mitigationSystem := mitigation.NewSystem(circuits, clk, recorder, log)
	encoder := encoding.NewEncoder(cfg.QubitCapacity, clk, recorder, log)
	memoryService := memory.NewService(circuits, mitigationSystem, clk, recorder, log, memory.Options{
		DecayRate:     cfg.FidelityDecayRate,
		WarnThreshold: cfg.FidelityWarnThreshold,
	})

	stream := server.NewFidelityStreamHandler(log)

	// Background jobs
	sched := scheduler.New(log)
	monitorJob := scheduler.NewFidelityMonitorJob(memoryService, clk, log, stream)
	if err := sched.AddJob(cfg.MonitorSchedule, monitorJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule fidelity monitor")
	}
	snapshotJob := scheduler.NewSnapshotJob(memoryService, snapshotRepo, clk, log)
	if err := sched.AddJob(cfg.SnapshotSchedule, snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule state snapshots")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:        log,
		Cfg:        cfg,
		Clock:      clk,
		Circuits:   circuits,
		Encoder:    encoder,
		Mitigation: mitigationSystem,
		Memory:     memoryService,
		Snapshots:  snapshotRepo,
		AuditStore: auditStore,
		Stream:     stream,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	recorder.Record(audit.CategorySystem, audit.LevelInfo, "System startup complete", map[string]interface{}{
		"port": cfg.Port,
	})

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	recorder.Record(audit.CategorySystem, audit.LevelInfo, "System shutdown complete", nil)
	log.Info().Msg("Shutdown complete")
}
