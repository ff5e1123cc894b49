// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Command api is the entry point for the Parity HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration (.env file if present, then environment variables).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/parityhq/parity-api/internal/affirmation"
	"github.com/parityhq/parity-api/internal/api"
	"github.com/parityhq/parity-api/internal/coaching"
	"github.com/parityhq/parity-api/internal/platform/config"
	"github.com/parityhq/parity-api/internal/platform/constants"
	"github.com/parityhq/parity-api/internal/platform/mailer"
	"github.com/parityhq/parity-api/internal/platform/migration"
	pgstore "github.com/parityhq/parity-api/internal/platform/postgres"
	redisstore "github.com/parityhq/parity-api/internal/platform/redis"
	"github.com/parityhq/parity-api/internal/platform/sec"
	"github.com/parityhq/parity-api/internal/social"
	"github.com/parityhq/parity-api/internal/users/auth"
	"github.com/parityhq/parity-api/internal/users/partner"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a developer convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("env_file_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service & Mailer ─────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.SecretKey, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	resetMailer := mailer.New(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, cfg.IsDevelopment(), log)

	// ── 7. Health Handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers([]api.DependencyCheck{
		{Name: "postgres", Ping: func() error { return pgstore.Ping(context.Background(), pool) }},
		{Name: "redis", Ping: func() error { return redisstore.Ping(context.Background(), rdb) }},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, resetTokenRepository, jwtSvc, resetMailer, cfg.AccessTokenTTL)
	authHandler := auth.NewHandler(authService)

	linkRepository := partner.NewLinkRepository(pool)
	partnerService := partner.NewService(userRepository, linkRepository)
	partnerHandler := partner.NewHandler(partnerService)

	postRepository := social.NewPostRepository(pool)
	socialService := social.NewService(postRepository)
	socialHandler := social.NewHandler(socialService)

	moduleRepository := coaching.NewModuleRepository(pool)
	coachingService := coaching.NewService(moduleRepository)
	coachingHandler := coaching.NewHandler(coachingService)

	affirmationRepository := affirmation.NewRepository(pool)
	affirmationService := affirmation.NewService(affirmationRepository)
	affirmationHandler := affirmation.NewHandler(affirmationService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        authHandler,
		Partner:     partnerHandler,
		Social:      socialHandler,
		Coaching:    coachingHandler,
		Affirmation: affirmationHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
