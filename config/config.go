package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/finflow/reconciliation-engine/consts"
)

// Config carries everything the engine reads from the environment.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBName     string
	DBPassword string
	HTTPPort   string

	TolerancePercent      float64
	ToleranceCeilingMinor int64

	SweepInterval  time.Duration
	SweepBatchSize int
	SweepWorkers   int

	RetryMaxAttempts int
	RetryBaseBackoff time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file is honored when present.
func Load() Config {
	godotenv.Load()

	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBName:     os.Getenv("DB_NAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		HTTPPort:   envString("PORT", "8080"),

		TolerancePercent:      envFloat("RECON_TOLERANCE_PERCENT", consts.DefaultTolerancePercent),
		ToleranceCeilingMinor: envInt64("RECON_TOLERANCE_CEILING_MINOR", consts.DefaultToleranceCeilingMinor),

		SweepInterval:  time.Duration(envInt("RECON_SWEEP_INTERVAL_SECONDS", consts.DefaultSweepIntervalInSec)) * time.Second,
		SweepBatchSize: envInt("RECON_SWEEP_BATCH_SIZE", consts.DefaultSweepBatchSize),
		SweepWorkers:   envInt("RECON_SWEEP_WORKERS", consts.DefaultSweepWorkers),

		RetryMaxAttempts: envInt("RECON_RETRY_MAX_ATTEMPTS", consts.DefaultRetryMaxAttempts),
		RetryBaseBackoff: time.Duration(envInt("RECON_RETRY_BASE_BACKOFF_SECONDS", consts.DefaultRetryBaseBackoffInSec)) * time.Second,
	}
}

// DatabaseURI builds the postgres DSN the same way for every server binary.
func (c Config) DatabaseURI() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBPassword)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
