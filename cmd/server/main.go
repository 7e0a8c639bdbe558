package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/moviehub/api/internal/adapters/handler/http"
	"github.com/moviehub/api/internal/adapters/repository/postgres"
	"github.com/moviehub/api/internal/adapters/storage/disk"
	"github.com/moviehub/api/internal/config"
	"github.com/moviehub/api/internal/core/services"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	posterStorage, err := disk.NewStorage(cfg.PosterDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize poster storage")
	}

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	movieRepo := postgres.NewMovieRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, nil)
	refreshService := services.NewRefreshTokenService(refreshRepo, cfg.RefreshTokenTTL, nil)
	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	authService := services.NewAuthService(userRepo, hasher, tokenService, refreshService)
	userService := services.NewUserService(userRepo)
	movieService := services.NewMovieService(movieRepo, posterStorage, cfg.BaseURL)

	authMiddleware := http.NewAuthMiddleware(tokenService, userService, http.NewPolicy())
	handler := http.NewHandler(
		log,
		authMiddleware,
		http.NewAuthHandler(authService),
		http.NewMovieHandler(movieService),
		http.NewFileHandler(posterStorage),
	)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
}
