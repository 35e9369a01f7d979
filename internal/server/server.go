// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8787"

	// MaxRequestBodySize caps POST bodies.
	MaxRequestBodySize = 64 * 1024

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// ============================================================================
// CONFIG
// ============================================================================

// Config configures a Server. Zero values are replaced with defaults.
type Config struct {
	Addr string

	// RateLimitPerMin is the per-IP request budget. 0 disables limiting.
	RateLimitPerMin int

	// MaxHistory bounds the in-memory history.
	MaxHistory int

	// CORSOrigins lists allowed browser origins. Nil allows any origin.
	CORSOrigins []string

	// Version is reported by /api/health.
	Version string

	Logger *slog.Logger
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the in-memory message processor backend.
type Server struct {
	cfg      Config
	router   chi.Router
	store    *Store
	limiter  *RateLimiter
	validate *validator.Validate
	logger   *slog.Logger
	started  time.Time
	now      func() time.Time
	newID    func() string

	mu         sync.Mutex
	httpServer *http.Server
	addr       net.Addr
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		store:    NewStore(cfg.MaxHistory),
		limiter:  NewRateLimiter(cfg.RateLimitPerMin),
		validate: newValidator(),
		logger:   cfg.Logger.With("component", "server"),
		started:  time.Now(),
		now:      time.Now,
		newID:    newHistoryID,
	}
	s.setupRoutes()
	return s
}

// Store returns the server's history store.
func (s *Server) Store() *Store {
	return s.store
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	// Set before Route so the /api subrouter inherits them.
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/message", s.handleMessage)
		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Get("/health", s.handleHealth)
	})
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	cors := DefaultCORSConfig()
	if s.cfg.CORSOrigins != nil {
		cors.AllowedOrigins = s.cfg.CORSOrigins
	}

	return Chain(
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
		CORSMiddleware(cors),
		RateLimitMiddleware(s.limiter, s.logger),
	)(s.router)
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled or serving fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String(), "version", s.cfg.Version)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Addr returns the address being served, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Uptime returns the time since the server was created.
func (s *Server) Uptime() time.Duration {
	return s.now().Sub(s.started)
}
