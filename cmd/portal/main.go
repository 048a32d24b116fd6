package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/demoapps/rbac-portal/internal/api"
	"github.com/demoapps/rbac-portal/internal/core/service"
	"github.com/demoapps/rbac-portal/internal/infrastructure/config"
	"github.com/demoapps/rbac-portal/internal/infrastructure/storage"
	"github.com/demoapps/rbac-portal/internal/transport"
	"github.com/demoapps/rbac-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        RBAC Demo Portal
// @version      1.0
// @description  Role-based access control demo with a simulated in-process backend.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Seed registry ---
	registry := transport.DefaultRegistry()
	if cfg.SeedFile != "" {
		loaded, err := transport.LoadRegistry(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SeedFile).Msg("seed file unusable")
		}
		registry = loaded
		log.Info().Str("path", cfg.SeedFile).Msg("loaded seed registry")
	}

	// --- Durable session slot ---
	slot, err := storage.New(ctx, storage.Config{
		Driver:   cfg.Storage.Driver,
		FilePath: cfg.Storage.FilePath,
		Redis:    storage.RedisConfig{Addr: cfg.Storage.Redis.Addr, DB: cfg.Storage.Redis.DB},
		Mongo:    storage.MongoConfig{URI: cfg.Storage.Mongo.URI, Database: cfg.Storage.Mongo.Database},
	}, cfg.SessionKey)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("session storage unavailable")
	}

	// --- Client chain: bearer decorator → simulated backend → real transport ---
	backend := transport.NewFakeBackend(registry, cfg.BackendDelay, http.DefaultTransport)
	bearer := &transport.BearerTransport{Next: backend}
	client := &http.Client{Transport: bearer}

	sessions := service.NewAuthService(ctx, client, cfg.APIBaseURL, slot, log)
	bearer.Sessions = sessions
	users := service.NewUserService(client, cfg.APIBaseURL)

	e := api.NewRouter(sessions, users, slot, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("portal listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
