package audit

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/database"
)

// Event is a persisted audit event
type Event struct {
	ID       int64                  `json:"id"`
	Stamp    string                 `json:"stamp"`
	Category string                 `json:"category"`
	Level    Level                  `json:"level"`
	Message  string                 `json:"message"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

// Store persists audit events to the audit database
type Store struct {
	db  *database.DB
	log zerolog.Logger
}

// NewStore creates an audit event store and ensures its schema exists
func NewStore(db *database.DB, log zerolog.Logger) (*Store, error) {
	store := &Store{
		db:  db,
		log: log.With().Str("repo", "audit").Logger(),
	}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS audit_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stamp TEXT NOT NULL,
			category TEXT NOT NULL,
			level TEXT NOT NULL,
			message TEXT NOT NULL,
			fields TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_audit_events_category ON audit_events(category);
	`)
	if err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}
	return nil
}

// Insert appends an event to the audit trail
func (s *Store) Insert(event Event) error {
	var fieldsJSON []byte
	if len(event.Fields) > 0 {
		var err error
		fieldsJSON, err = json.Marshal(event.Fields)
		if err != nil {
			return fmt.Errorf("failed to marshal event fields: %w", err)
		}
	}

	_, err := s.db.Conn().Exec(
		"INSERT INTO audit_events (stamp, category, level, message, fields) VALUES (?, ?, ?, ?, ?)",
		event.Stamp, event.Category, string(event.Level), event.Message, string(fieldsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent events, newest first
func (s *Store) Recent(limit int) ([]Event, error) {
	rows, err := s.db.Conn().Query(
		"SELECT id, stamp, category, level, message, fields FROM audit_events ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var level string
		var fieldsJSON *string
		if err := rows.Scan(&event.ID, &event.Stamp, &event.Category, &level, &event.Message, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		event.Level = Level(level)
		if fieldsJSON != nil && *fieldsJSON != "" {
			if err := json.Unmarshal([]byte(*fieldsJSON), &event.Fields); err != nil {
				s.log.Warn().Err(err).Int64("id", event.ID).Msg("Failed to decode event fields")
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
