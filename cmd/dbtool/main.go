package main

import (
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"survey-route-service/internal/adapters/metrics"
	"survey-route-service/internal/platform/db"
)

// dbtool prepares the shared Postgres metrics database used by planner runs.
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open metrics database")
	}
	defer pool.Close()

	logger.Info().Msg("initializing metrics schema")
	if err := metrics.InitPostgresSchema(pool); err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	logger.Info().Msg("schema ready")
}
