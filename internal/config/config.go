// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir               string // Base directory for databases (always absolute)
	LogLevel              string
	Port                  int
	DevMode               bool
	QubitCapacity         int     // Simulated qubit capacity shared by all components
	FidelityDecayRate     float64 // Exponential decay rate applied per second of storage
	FidelityWarnThreshold float64 // Below this, retrieval and monitoring emit warnings
	MonitorSchedule       string  // Cron spec for the fidelity monitor job
	SnapshotSchedule      string  // Cron spec for the state snapshot job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("SPED_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               absDataDir,
		Port:                  getEnvAsInt("SPED_PORT", 8002),
		DevMode:               getEnvAsBool("DEV_MODE", false),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		QubitCapacity:         getEnvAsInt("QUBIT_CAPACITY", 20),
		FidelityDecayRate:     getEnvAsFloat("FIDELITY_DECAY_RATE", 0.1),
		FidelityWarnThreshold: getEnvAsFloat("FIDELITY_WARN_THRESHOLD", 0.9),
		MonitorSchedule:       getEnv("MONITOR_SCHEDULE", "@every 30s"),
		SnapshotSchedule:      getEnv("SNAPSHOT_SCHEDULE", "@every 5m"),
	}

	if cfg.QubitCapacity < 2 {
		return nil, fmt.Errorf("QUBIT_CAPACITY must be at least 2, got %d", cfg.QubitCapacity)
	}
	if cfg.FidelityDecayRate <= 0 {
		return nil, fmt.Errorf("FIDELITY_DECAY_RATE must be positive, got %f", cfg.FidelityDecayRate)
	}
	if cfg.FidelityWarnThreshold <= 0 || cfg.FidelityWarnThreshold > 1 {
		return nil, fmt.Errorf("FIDELITY_WARN_THRESHOLD must be in (0,1], got %f", cfg.FidelityWarnThreshold)
	}

	return cfg, nil
}

// AuditDBPath returns the path of the audit events database
func (c *Config) AuditDBPath() string {
	return filepath.Join(c.DataDir, "audit.db")
}

// ArchiveDBPath returns the path of the state archive database
func (c *Config) ArchiveDBPath() string {
	return filepath.Join(c.DataDir, "archive.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
