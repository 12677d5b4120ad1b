package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/Simplici0/suite-emprende/internal/config"
	"github.com/Simplici0/suite-emprende/internal/db"
	"github.com/Simplici0/suite-emprende/internal/logging"
	"github.com/Simplici0/suite-emprende/internal/migrations"
)

// migrate applies the embedded schema outside of dev, where the server
// does not migrate on startup.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(os.Stderr, zerolog.InfoLevel)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open database")
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}
	log.Info().Str("db_path", cfg.DBPath).Msg("migrations applied")
}
