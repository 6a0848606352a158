package snapshots

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Craig444444444/sped-agi/internal/database"
	"github.com/Craig444444444/sped-agi/internal/modules/memory"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    fmt.Sprintf("file:archive_%s?mode=memory&cache=shared", t.Name()),
		Profile: database.ProfileArchive,
		Name:    "archive",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRepository(db, zerolog.Nop())
	require.NoError(t, err)
	return repo
}

func TestSaveAndLatest(t *testing.T) {
	repo := testRepository(t)

	states := []memory.Summary{
		{ID: "state-000001", Qubits: 4, Encoding: "direct", Fidelity: 0.97, Stamp: "2025-05-31 17:40:00"},
		{ID: "state-000002", Qubits: 6, Encoding: "error_protected", Fidelity: 0.91, Stamp: "2025-05-31 17:41:00",
			Metadata: map[string]string{"origin": "test"}},
	}

	require.NoError(t, repo.Save("2025-05-31 17:42:00", states))

	snapshots, err := repo.Latest(5)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	assert.Equal(t, "2025-05-31 17:42:00", snapshots[0].TakenAt)
	require.Len(t, snapshots[0].States, 2)
	assert.Equal(t, "state-000001", snapshots[0].States[0].ID)
	assert.InDelta(t, 0.91, snapshots[0].States[1].Fidelity, 1e-9)
	assert.Equal(t, "test", snapshots[0].States[1].Metadata["origin"])
}

func TestLatest_NewestFirst(t *testing.T) {
	repo := testRepository(t)

	for i := 0; i < 3; i++ {
		stamp := fmt.Sprintf("2025-05-31 17:4%d:00", i)
		require.NoError(t, repo.Save(stamp, nil))
	}

	snapshots, err := repo.Latest(2)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "2025-05-31 17:42:00", snapshots[0].TakenAt)
	assert.Equal(t, "2025-05-31 17:41:00", snapshots[1].TakenAt)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
