// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/parityhq/parity-api/internal/affirmation"
	"github.com/parityhq/parity-api/internal/coaching"
	"github.com/parityhq/parity-api/internal/platform/config"
	"github.com/parityhq/parity-api/internal/platform/constants"
	"github.com/parityhq/parity-api/internal/platform/middleware"
	"github.com/parityhq/parity-api/internal/social"
	"github.com/parityhq/parity-api/internal/users/auth"
	"github.com/parityhq/parity-api/internal/users/partner"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the identity routes (register, login, me, password reset).
	Auth *auth.Handler

	// Partner handles partner link codes and the mutual link operation.
	Partner *partner.Handler

	// Social handles the anonymous feed.
	Social *social.Handler

	// Coaching handles the learning modules and progress tracking.
	Coaching *coaching.Handler

	// Affirmation handles affirmation templates and sending.
	Affirmation *affirmation.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The Authenticate middleware runs globally: it attaches the caller identity
// when a valid bearer token is present and otherwise passes through, letting
// each route group decide with [middleware.RequireAuth] whether anonymous
// callers are acceptable.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.IdentityResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Route prefixes match what the mobile clients already call; there is no
	// version prefix in the wire contract.
	r.Mount("/users", h.Auth.Routes())
	r.Mount("/partner", h.Partner.Routes())
	r.Mount("/social", h.Social.Routes())
	r.Mount("/coaching", h.Coaching.Routes())
	r.Mount("/affirmations", h.Affirmation.Routes())

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
