// Package config collects all runtime configuration from the environment
// into one struct injected at startup. The signing secret and token TTLs
// live here rather than in package-level state so they can differ per
// environment and be rotated across deploys.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	BaseURL     string
	PosterDir   string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
}

func Load() (*Config, error) {
	// A .env file is a development convenience; in production the
	// variables come from the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            envString("ADDR", "0.0.0.0:8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		BaseURL:         envString("BASE_URL", "http://localhost:8080"),
		PosterDir:       envString("POSTER_DIR", "posters"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  25000 * time.Second,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		BcryptCost:      12,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	var err error
	if cfg.AccessTokenTTL, err = envDuration("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = envDuration("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envString(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}
