package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	envDev = "dev"

	defaultAppEnv         = envDev
	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultRateLimitRPS   = 10.0
	defaultRateLimitBurst = 20
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv         string
	DBPath         string
	Port           string
	LogLevel       zerolog.Level
	PresetsPath    string
	RateLimitRPS   float64
	RateLimitBurst int

	// DotEnvKeys is the number of variables taken from .env.
	DotEnvKeys int
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == envDev
}

// Load reads environment variables, after a best-effort .env load, and
// returns a populated Config.
func Load() (Config, error) {
	return load(".env")
}

func load(dotEnvPath string) (Config, error) {
	applied, err := loadDotEnv(dotEnvPath)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvPath, err)
	}

	cfg := Config{
		AppEnv:      strings.ToLower(getenv("APP_ENV", defaultAppEnv)),
		DBPath:      getenv("DB_PATH", defaultDBPath),
		Port:        getenv("PORT", defaultPort),
		PresetsPath: os.Getenv("PRESETS_PATH"),
		DotEnvKeys:  applied,
	}

	if cfg.LogLevel, err = zerolog.ParseLevel(getenv("LOG_LEVEL", defaultLogLevel)); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	if cfg.RateLimitRPS, err = parsePositiveFloat("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parsePositiveInt("RATE_LIMIT_BURST", defaultRateLimitBurst); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parsePositiveFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, raw)
	}
	return v, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}
