package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Simplici0/suite-emprende/internal/config"
	"github.com/Simplici0/suite-emprende/internal/db"
	"github.com/Simplici0/suite-emprende/internal/logging"
	"github.com/Simplici0/suite-emprende/internal/migrations"
	"github.com/Simplici0/suite-emprende/internal/presets"
	"github.com/Simplici0/suite-emprende/internal/ratelimit"
	"github.com/Simplici0/suite-emprende/internal/seed"
)

const (
	shutdownTimeout = 10 * time.Second
	visitorExpiry   = 3 * time.Minute
)

// newRouter wires the middleware stack around the API routes. The limiter
// keys on the connection address; X-Forwarded-For is client controlled.
func newRouter(log zerolog.Logger, srv *server, limiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Requests(log))
	r.Use(middleware.Recoverer)
	r.Use(limiter.Middleware)
	srv.routes(r)
	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(os.Stderr, zerolog.InfoLevel)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(os.Stdout, cfg.LogLevel)
	if cfg.DotEnvKeys > 0 {
		log.Debug().Int("keys", cfg.DotEnvKeys).Msg("loaded .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	settings, err := presets.LoadFile(cfg.PresetsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load presets")
	}
	stats, err := seed.Run(ctx, database, seed.Config{Settings: settings})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed settings")
	}
	log.Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("settings seeded")

	srv := newServer(log, presets.NewStore(database))
	if err := srv.reloadPresets(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load pricing presets")
	}

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, visitorExpiry)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(log, srv, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", httpServer.Addr).Str("env", cfg.AppEnv).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
