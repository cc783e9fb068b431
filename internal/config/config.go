package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs to wire itself up. Values
// come from the environment, optionally seeded from a .env file in the
// working directory.
type Config struct {
	HTTPAddr     string   // LEDGER_HTTP_ADDR, default ":8080"
	Owner        string   // LEDGER_OWNER, required
	PostgresDSN  string   // LEDGER_POSTGRES_DSN, empty means in-memory store
	KafkaBrokers []string // LEDGER_KAFKA_BROKERS, empty means log publisher
	LogLevel     string   // LEDGER_LOG_LEVEL, default "info"
}

var errOwnerRequired = errors.New("LEDGER_OWNER must be set")

// Load reads an optional .env file, then the environment. The owner is
// the only required setting: the ledger fixes its owner at construction
// and never reassigns it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:    envOr("LEDGER_HTTP_ADDR", ":8080"),
		Owner:       os.Getenv("LEDGER_OWNER"),
		PostgresDSN: os.Getenv("LEDGER_POSTGRES_DSN"),
		LogLevel:    envOr("LEDGER_LOG_LEVEL", "info"),
	}

	for _, broker := range strings.Split(os.Getenv("LEDGER_KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}

	if cfg.Owner == "" {
		return Config{}, errOwnerRequired
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
