package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Craig444444444/sped-agi/internal/clock"
	"github.com/Craig444444444/sped-agi/internal/database"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    fmt.Sprintf("file:audit_%s?mode=memory&cache=shared", t.Name()),
		Profile: database.ProfileAudit,
		Name:    "audit",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(db, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestRecorder_PersistsEvents(t *testing.T) {
	store := testStore(t)
	clk := clock.Manual(time.Date(2025, 5, 31, 17, 43, 3, 0, time.UTC))
	recorder := NewRecorder(clk, zerolog.Nop()).WithStore(store)

	recorder.Record(CategoryQuantum, LevelInfo, "state encoded", map[string]interface{}{
		"method": "amplitude",
		"qubits": 16,
	})

	events, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, CategoryQuantum, events[0].Category)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, "state encoded", events[0].Message)
	assert.Equal(t, "2025-05-31 17:43:03", events[0].Stamp)
	assert.Equal(t, "amplitude", events[0].Fields["method"])
}

func TestRecorder_LogOnlyWithoutStore(t *testing.T) {
	clk := clock.Manual(time.Date(2025, 5, 31, 17, 0, 0, 0, time.UTC))
	recorder := NewRecorder(clk, zerolog.Nop())

	// Must not panic or fail without a store attached
	recorder.Record(CategorySystem, LevelWarning, "no store", nil)
}

func TestRecorder_StoreFailureDoesNotPropagate(t *testing.T) {
	store := testStore(t)
	clk := clock.Manual(time.Date(2025, 5, 31, 17, 0, 0, 0, time.UTC))
	recorder := NewRecorder(clk, zerolog.Nop()).WithStore(store)

	// Unmarshalable field value forces a persistence failure
	recorder.Record(CategorySystem, LevelError, "bad payload", map[string]interface{}{
		"broken": make(chan int),
	})

	events, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStore_RecentOrdersNewestFirst(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(Event{
			Stamp:    "2025-05-31 17:00:00",
			Category: CategoryMemory,
			Level:    LevelInfo,
			Message:  fmt.Sprintf("event %d", i),
		}))
	}

	events, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "event 2", events[0].Message)
	assert.Equal(t, "event 1", events[1].Message)
}
