package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Craig444444444/sped-agi/internal/audit"
	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/modules/circuit"
	"github.com/Craig444444444/sped-agi/internal/modules/mitigation"
)

// State is one stored memory state. Fidelity is mutated only by
// MonitorFidelity; states are never deleted by this service.
type State struct {
	ID       string            `json:"id"`
	Qubits   []int             `json:"qubits"`
	Scheme   Scheme            `json:"-"`
	Encoding string            `json:"encoding"`
	Fidelity float64           `json:"fidelity"`
	Stamp    string            `json:"timestamp"`
	Metadata map[string]string `json:"metadata,omitempty"`

	state     []complex128
	inputLen  int
	norm      float64
	storedAt  time.Time
	lastDecay time.Time
}

// Summary is the externally visible snapshot of a stored state
type Summary struct {
	ID       string            `json:"id"`
	Qubits   int               `json:"qubits"`
	Encoding string            `json:"encoding"`
	Fidelity float64           `json:"fidelity"`
	Stamp    string            `json:"timestamp"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Service is the quantum memory interface. Store, Retrieve and
// MonitorFidelity serialize on an internal mutex so the service can be
// shared across concurrent callers.
type Service struct {
	circuits      *circuit.Manager
	mitigation    *mitigation.System
	clock         clock.Clock
	audit         audit.Recorder
	log           zerolog.Logger
	decayRate     float64
	warnThreshold float64

	mu     sync.Mutex
	states map[string]*State
	nextID int
}

// Options tunes the fidelity decay model
type Options struct {
	DecayRate     float64 // per second; 0 means the 0.1 default
	WarnThreshold float64 // 0 means the 0.9 default
}

// NewService creates a memory interface bound to a circuit manager and an
// error mitigation system
func NewService(
	circuits *circuit.Manager,
	mitigationSystem *mitigation.System,
	clk clock.Clock,
	recorder audit.Recorder,
	log zerolog.Logger,
	opts Options,
) *Service {
	if opts.DecayRate <= 0 {
		opts.DecayRate = 0.1
	}
	if opts.WarnThreshold <= 0 {
		opts.WarnThreshold = 0.9
	}

	s := &Service{
		circuits:      circuits,
		mitigation:    mitigationSystem,
		clock:         clk,
		audit:         recorder,
		log:           log.With().Str("component", "memory").Logger(),
		decayRate:     opts.DecayRate,
		warnThreshold: opts.WarnThreshold,
		states:        make(map[string]*State),
		nextID:        1,
	}

	s.audit.Record(audit.CategoryMemory, audit.LevelInfo, "Quantum memory interface initialized", map[string]interface{}{
		"available_qubits": circuits.Qubits(),
		"decay_rate":       s.decayRate,
	})
	return s
}

// Store encodes data under the scheme, allocates qubit indices and persists
// the resulting state. Returns the fresh state ID.
func (s *Service) Store(data []float64, scheme Scheme, metadata map[string]string) (string, error) {
	if !scheme.Valid() {
		return "", fmt.Errorf("%w: %v", ErrInvalidScheme, scheme)
	}

	state, norm, err := encodeScheme(scheme, data)
	if err != nil {
		s.audit.Record(audit.CategoryMemory, audit.LevelError, "State storage failed", map[string]interface{}{
			"scheme": scheme.String(),
			"error":  err.Error(),
		})
		return "", err
	}

	// One qubit index per encoded amplitude, allocated from the front of
	// the capacity pool
	required := len(state)
	capacity := s.circuits.Qubits()
	if required > capacity {
		err := fmt.Errorf("%w: scheme %s needs %d qubits, capacity is %d",
			ErrCapacityExceeded, scheme, required, capacity)
		s.audit.Record(audit.CategoryMemory, audit.LevelError, "State storage failed", map[string]interface{}{
			"scheme":   scheme.String(),
			"required": required,
			"capacity": capacity,
		})
		return "", err
	}
	qubits := make([]int, required)
	for i := range qubits {
		qubits[i] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("state-%06d", s.nextID)
	s.nextID++

	now := s.clock.Now()
	if metadata == nil {
		metadata = map[string]string{}
	}
	stored := &State{
		ID:       id,
		Qubits:   qubits,
		Scheme:   scheme,
		Encoding: scheme.String(),
		Fidelity: 1.0,
		Stamp:    s.clock.Stamp(),
		Metadata: metadata,
		state:    state,
		inputLen: len(data),
		norm:     norm,
		storedAt: now,
	}

	s.mitigation.Apply(mitigation.Target{
		Kind:   "memory",
		RefID:  id,
		Qubits: qubits,
	})

	s.states[id] = stored

	s.audit.Record(audit.CategoryMemory, audit.LevelInfo, "State stored", map[string]interface{}{
		"state_id": id,
		"encoding": scheme.String(),
		"qubits":   len(qubits),
	})

	return id, nil
}

// Retrieve decodes a stored state back to classical data. A low-fidelity
// state is returned anyway, with a warning on the audit trail.
func (s *Service) Retrieve(id string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.states[id]
	if !ok {
		s.audit.Record(audit.CategoryMemory, audit.LevelError, "State retrieval failed", map[string]interface{}{
			"state_id": id,
		})
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if stored.Fidelity < s.warnThreshold {
		s.audit.Record(audit.CategoryMemory, audit.LevelWarning, "Low fidelity state retrieval", map[string]interface{}{
			"state_id": id,
			"fidelity": stored.Fidelity,
		})
	}

	decoded, err := decodeScheme(stored.Scheme, stored.state, stored.inputLen, stored.norm)
	if err != nil {
		return nil, err
	}

	s.audit.Record(audit.CategoryMemory, audit.LevelInfo, "State retrieved", map[string]interface{}{
		"state_id": id,
		"fidelity": stored.Fidelity,
	})

	return decoded, nil
}

// MonitorFidelity decays the fidelity of every stored state by
// exp(-decayRate * Δt), where Δt is the real elapsed time since the state
// was stored or last decayed. Returns the current fidelity per state ID.
func (s *Service) MonitorFidelity() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	fidelities := make(map[string]float64, len(s.states))

	for id, stored := range s.states {
		since := stored.storedAt
		if stored.lastDecay.After(since) {
			since = stored.lastDecay
		}
		elapsed := now.Sub(since).Seconds()
		if elapsed > 0 {
			stored.Fidelity *= math.Exp(-s.decayRate * elapsed)
			stored.lastDecay = now
		}

		// Exponential decay of a value in [0,1] stays in [0,1]; anything
		// else is a defect, not something to clamp silently
		if math.IsNaN(stored.Fidelity) || stored.Fidelity < 0 || stored.Fidelity > 1 {
			s.audit.Record(audit.CategoryMemory, audit.LevelCritical, "Fidelity out of range", map[string]interface{}{
				"state_id": id,
				"fidelity": stored.Fidelity,
			})
		}

		fidelities[id] = stored.Fidelity

		if stored.Fidelity < s.warnThreshold {
			s.audit.Record(audit.CategoryMemory, audit.LevelWarning, "State fidelity degrading", map[string]interface{}{
				"state_id": id,
				"fidelity": stored.Fidelity,
			})
		}
	}

	return fidelities
}

// Summaries returns a snapshot of every stored state, ordered by ID
func (s *Service) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]Summary, 0, len(s.states))
	for _, stored := range s.states {
		summaries = append(summaries, Summary{
			ID:       stored.ID,
			Qubits:   len(stored.Qubits),
			Encoding: stored.Encoding,
			Fidelity: stored.Fidelity,
			Stamp:    stored.Stamp,
			Metadata: stored.Metadata,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

// Count returns the number of stored states
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
