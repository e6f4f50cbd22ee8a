package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/cache"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/config"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/database"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/handlers"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/log"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/security"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	if err := database.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
	}

	keyring, err := security.NewKeyring(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init signing key")
	}
	if cfg.Security.JWTSecret == "" {
		logger.Info().Msg("signing key generated for this process; tokens will not survive a restart")
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, keyring, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	db.Close()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
