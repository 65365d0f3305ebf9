// Package server wires the asset handler into an HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"zone.digit.blockboard/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// NewRouter serves assets for GET and HEAD on every path. Any other method
// gets 405. The rate limiter, when enabled, lives until ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, assets http.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(Recoverer(logger))
	r.Use(Logger(logger))
	if cfg.RateLimit.Enabled() {
		r.Use(RateLimit(ctx, cfg.RateLimit.RPS, cfg.RateLimit.BurstOrDefault()))
	}

	r.Get("/*", assets.ServeHTTP)
	r.Head("/*", assets.ServeHTTP)

	return r
}

// New returns an http.Server listening on cfg's port.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
