package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/config"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/events/logging"
	interfaces "github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/ledger"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg.LogLevel)

	var store interfaces.LedgerStore
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("open postgres")
		}
		if err := db.Ping(); err != nil {
			logger.Fatal().Err(err).Msg("ping postgres")
		}
		store = postgres.NewPostgresLedgerStore(db)
		logger.Info().Msg("using postgres ledger store")
	} else {
		store = memory.NewMemoryLedgerStore()
		logger.Info().Msg("using in-memory ledger store")
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Msg("publishing events to kafka")
	} else {
		publisher = logging.NewPublisher(logger)
		logger.Info().Msg("publishing events to the log")
	}

	ledgerService := ledger.New(models.AccountID(cfg.Owner), store, publisher)
	srv := newServer(ledgerService, logger)

	logger.Info().Str("addr", cfg.HTTPAddr).Str("owner", cfg.Owner).Msg("starting ledger server")
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.routes()); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "token-ledger").Logger()
}
