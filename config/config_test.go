package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 0.01, cfg.TolerancePercent)
	assert.Equal(t, int64(500), cfg.ToleranceCeilingMinor)
	assert.Equal(t, 60*time.Second, cfg.SweepInterval)
	assert.Equal(t, 50, cfg.SweepBatchSize)
	assert.Equal(t, 1, cfg.SweepWorkers)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.RetryBaseBackoff)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECON_TOLERANCE_CEILING_MINOR", "1000")
	t.Setenv("RECON_SWEEP_INTERVAL_SECONDS", "5")
	t.Setenv("RECON_SWEEP_BATCH_SIZE", "10")
	t.Setenv("RECON_RETRY_MAX_ATTEMPTS", "5")

	cfg := Load()

	assert.Equal(t, int64(1000), cfg.ToleranceCeilingMinor)
	assert.Equal(t, 5*time.Second, cfg.SweepInterval)
	assert.Equal(t, 10, cfg.SweepBatchSize)
	assert.Equal(t, 5, cfg.RetryMaxAttempts)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("RECON_SWEEP_BATCH_SIZE", "not-a-number")
	t.Setenv("RECON_TOLERANCE_PERCENT", "-1")

	cfg := Load()

	assert.Equal(t, 50, cfg.SweepBatchSize)
	assert.Equal(t, 0.01, cfg.TolerancePercent)
}

func TestDatabaseURI(t *testing.T) {
	cfg := Config{DBHost: "localhost", DBPort: "5432", DBUser: "recon", DBName: "events", DBPassword: "secret"}
	assert.Equal(t,
		"host=localhost port=5432 user=recon dbname=events sslmode=disable password=secret",
		cfg.DatabaseURI())
}
