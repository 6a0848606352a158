package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
	"github.com/Craig444444444/sped-agi/internal/modules/snapshots"
)

// SnapshotJob archives the current memory states to the snapshot repository.
// The quantum core never calls the archival layer itself; this job is the
// only writer.
type SnapshotJob struct {
	memory *memory.Service
	repo   *snapshots.Repository
	clock  clock.Clock
	log    zerolog.Logger
}

// NewSnapshotJob creates the state snapshot job
func NewSnapshotJob(mem *memory.Service, repo *snapshots.Repository, clk clock.Clock, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		memory: mem,
		repo:   repo,
		clock:  clk,
		log:    log.With().Str("job", "state_snapshot").Logger(),
	}
}

// Name implements Job
func (j *SnapshotJob) Name() string { return "state_snapshot" }

// Run implements Job
func (j *SnapshotJob) Run() error {
	states := j.memory.Summaries()
	if len(states) == 0 {
		j.log.Debug().Msg("No states to archive")
		return nil
	}
	return j.repo.Save(j.clock.Stamp(), states)
}
