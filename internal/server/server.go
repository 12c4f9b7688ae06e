// Package server hosts the HTTP API: route composition, shared middleware,
// and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/version"
)

// RouteRegistrar is implemented by feature handlers that mount their own
// routes on the shared mux.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options controls the shared middleware stack.
type Options struct {
	// AllowedOrigins lists origins granted CORS access. Empty disables
	// the CORS headers entirely.
	AllowedOrigins []string

	// RateLimit is the sustained request rate allowed per client IP, in
	// requests per second. Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the per-client burst allowance. Ignored when
	// RateLimit is zero.
	RateBurst int
}

// Server is the main DealDeck HTTP server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *zap.Logger
}

// New creates a Server, mounts the core routes, and lets each registrar
// mount its own. The middleware stack wraps everything, /metrics included.
func New(addr string, logger *zap.Logger, opts Options, registrars ...RouteRegistrar) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:    mux,
		logger: logger,
	}

	s.registerCoreRoutes()
	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	var handler http.Handler = mux
	handler = instrumentMetrics(handler)
	if opts.RateLimit > 0 {
		handler = rateLimitMiddleware(handler, opts.RateLimit, opts.RateBurst)
	}
	if len(opts.AllowedOrigins) > 0 {
		handler = corsMiddleware(handler, opts.AllowedOrigins)
	}
	handler = loggingMiddleware(handler, logger)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the fully wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-DealDeck-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "dealdeck",
		"version": version.Map(),
	})
}
