// Package snapshots archives periodic snapshots of the stored memory states.
// The archival layer is a collaborator of the quantum core: only the
// scheduler job writes here, never the core components themselves.
package snapshots

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Craig444444444/sped-agi/internal/database"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
)

// Snapshot is one archived reading of the memory interface
type Snapshot struct {
	ID      int64            `json:"id"`
	TakenAt string           `json:"taken_at"`
	States  []memory.Summary `json:"states"`
}

// Repository persists snapshots to the archive database
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a snapshot repository and ensures its schema exists
func NewRepository(db *database.DB, log zerolog.Logger) (*Repository, error) {
	repo := &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
	if err := repo.ensureSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) ensureSchema() error {
	_, err := r.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS memory_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			state_count INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save archives a reading of the memory states
func (r *Repository) Save(takenAt string, states []memory.Summary) error {
	payload, err := msgpack.Marshal(states)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot payload: %w", err)
	}

	_, err = r.db.Conn().Exec(
		"INSERT INTO memory_snapshots (taken_at, state_count, payload) VALUES (?, ?, ?)",
		takenAt, len(states), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	r.log.Debug().Int("states", len(states)).Str("taken_at", takenAt).Msg("Snapshot archived")
	return nil
}

// Latest returns up to limit snapshots, newest first, with payloads decoded
func (r *Repository) Latest(limit int) ([]Snapshot, error) {
	rows, err := r.db.Conn().Query(
		"SELECT id, taken_at, payload FROM memory_snapshots ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snapshot Snapshot
		var payload []byte
		if err := rows.Scan(&snapshot.ID, &snapshot.TakenAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := msgpack.Unmarshal(payload, &snapshot.States); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot %d: %w", snapshot.ID, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// Count returns the number of archived snapshots
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.Conn().QueryRow("SELECT COUNT(*) FROM memory_snapshots").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}
