package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	CurriculumDir      string
	LogLevel           string
	HistoryWorkerCount int
	HistoryQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:frtutor.db"),
		CurriculumDir:      envOr("CURRICULUM_DIR", "curriculum"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		HistoryWorkerCount: envIntOr("HISTORY_WORKER_COUNT", 2),
		HistoryQueueSize:   envIntOr("HISTORY_QUEUE_SIZE", 64),
	}
}

// Validate reports every problem with the configuration at once so a
// bad deployment fails with the full picture.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.CurriculumDir == "" {
		problems = append(problems, "CURRICULUM_DIR cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.HistoryWorkerCount < 1 {
		problems = append(problems, "HISTORY_WORKER_COUNT must be at least 1")
	}
	if c.HistoryQueueSize < 1 {
		problems = append(problems, "HISTORY_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
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
