package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/cognitrain/internal/logger"
)

type Config struct {
	Addr         string
	DBPath       string
	LogLevel     string
	WorkerCount  int
	QueueSize    int
	RecentWindow int    // sessions considered for a difficulty decision
	TuningPath   string // optional TOML file overriding scoring and difficulty defaults
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("ADDR", ":8080"),
		DBPath:       envOr("DB_PATH", "file:cognitrain.db"),
		LogLevel:     envOr("LOG_LEVEL", "INFO"),
		WorkerCount:  envIntOr("WORKER_COUNT", 2),
		QueueSize:    envIntOr("QUEUE_SIZE", 64),
		RecentWindow: envIntOr("RECENT_WINDOW", 5),
		TuningPath:   envOr("TUNING_PATH", "tuning.toml"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.WorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("WORKER_COUNT must be >= 1, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		problems = append(problems, fmt.Sprintf("QUEUE_SIZE must be >= 1, got %d", c.QueueSize))
	}
	if c.RecentWindow < 1 {
		problems = append(problems, fmt.Sprintf("RECENT_WINDOW must be >= 1, got %d", c.RecentWindow))
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
