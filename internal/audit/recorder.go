// Package audit provides the event recording service consumed by the quantum
// components. Recording is strictly best-effort: a failing store must never
// alter the result of the operation that emitted the event.
package audit

import (
	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/clock"
)

// Level is the severity of an audit event
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Known event categories
const (
	CategorySystem  = "system"
	CategoryQuantum = "quantum"
	CategoryMemory  = "memory"
)

// Recorder is the interface the quantum components record events through
type Recorder interface {
	Record(category string, level Level, message string, fields map[string]interface{})
}

// EventRecorder writes audit events to the structured log and, when a store
// is attached, persists them to the audit database.
type EventRecorder struct {
	clock clock.Clock
	store *Store // nil means log-only
	log   zerolog.Logger
}

// NewRecorder creates a log-only event recorder
func NewRecorder(clk clock.Clock, log zerolog.Logger) *EventRecorder {
	return &EventRecorder{
		clock: clk,
		log:   log.With().Str("component", "audit").Logger(),
	}
}

// WithStore attaches a persistent store to the recorder
func (r *EventRecorder) WithStore(store *Store) *EventRecorder {
	r.store = store
	return r
}

// Record logs an audit event. Persistence failures are logged and swallowed.
func (r *EventRecorder) Record(category string, level Level, message string, fields map[string]interface{}) {
	stamp := r.clock.Stamp()

	event := r.levelEvent(level).
		Str("category", category).
		Str("stamp", stamp)
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg(message)

	if r.store == nil {
		return
	}
	if err := r.store.Insert(Event{
		Stamp:    stamp,
		Category: category,
		Level:    level,
		Message:  message,
		Fields:   fields,
	}); err != nil {
		r.log.Warn().Err(err).Str("category", category).Msg("Failed to persist audit event")
	}
}

func (r *EventRecorder) levelEvent(level Level) *zerolog.Event {
	switch level {
	case LevelDebug:
		return r.log.Debug()
	case LevelWarning:
		return r.log.Warn()
	case LevelError, LevelCritical:
		return r.log.Error()
	default:
		return r.log.Info()
	}
}

// NopRecorder discards all events. Used in tests.
type NopRecorder struct{}

// Record implements Recorder
func (NopRecorder) Record(string, Level, string, map[string]interface{}) {}
