package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPED_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8002, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20, cfg.QubitCapacity)
	assert.InDelta(t, 0.1, cfg.FidelityDecayRate, 1e-12)
	assert.InDelta(t, 0.9, cfg.FidelityWarnThreshold, 1e-12)
	assert.Equal(t, "@every 30s", cfg.MonitorSchedule)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPED_DATA_DIR", t.TempDir())
	t.Setenv("SPED_PORT", "9100")
	t.Setenv("QUBIT_CAPACITY", "8")
	t.Setenv("FIDELITY_DECAY_RATE", "0.25")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 8, cfg.QubitCapacity)
	assert.InDelta(t, 0.25, cfg.FidelityDecayRate, 1e-12)
	assert.True(t, cfg.DevMode)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"tiny capacity", "QUBIT_CAPACITY", "1"},
		{"zero decay", "FIDELITY_DECAY_RATE", "0"},
		{"threshold above one", "FIDELITY_WARN_THRESHOLD", "1.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SPED_DATA_DIR", t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabasePaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPED_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.DataDir, "audit.db"), cfg.AuditDBPath())
	assert.Equal(t, filepath.Join(cfg.DataDir, "archive.db"), cfg.ArchiveDBPath())
}
