package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
)

// FidelityReading is one monitoring pass over the stored states
type FidelityReading struct {
	Stamp      string             `json:"timestamp"`
	Fidelities map[string]float64 `json:"fidelities"`
}

// ReadingSink receives fidelity readings as they are taken. Publish must not
// block; slow consumers drop readings.
type ReadingSink interface {
	Publish(reading FidelityReading)
}

// FidelityMonitorJob periodically decays and reports stored-state fidelities
type FidelityMonitorJob struct {
	memory *memory.Service
	clock  clock.Clock
	sinks  []ReadingSink
	log    zerolog.Logger
}

// NewFidelityMonitorJob creates the fidelity monitor job
func NewFidelityMonitorJob(mem *memory.Service, clk clock.Clock, log zerolog.Logger, sinks ...ReadingSink) *FidelityMonitorJob {
	return &FidelityMonitorJob{
		memory: mem,
		clock:  clk,
		sinks:  sinks,
		log:    log.With().Str("job", "fidelity_monitor").Logger(),
	}
}

// Name implements Job
func (j *FidelityMonitorJob) Name() string { return "fidelity_monitor" }

// Run implements Job
func (j *FidelityMonitorJob) Run() error {
	reading := FidelityReading{
		Stamp:      j.clock.Stamp(),
		Fidelities: j.memory.MonitorFidelity(),
	}

	j.log.Debug().Int("states", len(reading.Fidelities)).Msg("Fidelity reading taken")

	for _, sink := range j.sinks {
		sink.Publish(reading)
	}
	return nil
}
