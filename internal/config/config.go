package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/flashdeck/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	HistoryWorkerCount int
	HistoryQueueSize   int
	SeedDefaultDecks   bool
	ShutdownTimeoutSec int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or malformed.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		HistoryWorkerCount: envIntOr("HISTORY_WORKER_COUNT", 1),
		HistoryQueueSize:   envIntOr("HISTORY_QUEUE_SIZE", 64),
		SeedDefaultDecks:   envBoolOr("SEED_DEFAULT_DECKS", true),
		ShutdownTimeoutSec: envIntOr("SHUTDOWN_TIMEOUT_SECONDS", 30),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.HistoryWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("HISTORY_WORKER_COUNT must be at least 1, got %d", c.HistoryWorkerCount))
	}
	if c.HistoryQueueSize < 1 {
		errs = append(errs, fmt.Errorf("HISTORY_QUEUE_SIZE must be at least 1, got %d", c.HistoryQueueSize))
	}
	if c.ShutdownTimeoutSec < 1 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be at least 1, got %d", c.ShutdownTimeoutSec))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
