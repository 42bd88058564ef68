// Package server assembles the HTTP surface: routes, middleware and lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/errs"
	"bookstore/internal/httpx"
)

const readyTimeout = 500 * time.Millisecond

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router is the fully wrapped application handler.
type Router struct {
	handler   http.Handler
	rateLimit *httpx.RateLimitMiddleware
}

// NewRouter mounts the operational and book routes behind the middleware chain.
func NewRouter(cfg config.ServerConfig, logger zerolog.Logger, db Pinger, books book.Repository) *Router {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness check failed")
			httpx.WriteError(w, errs.NewStatusError(http.StatusServiceUnavailable))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(book.NewService(books)).Register(mux)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies...)

	handler := httpx.Chain(envelopeUnmatched(mux),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		rateLimit.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	return &Router{handler: handler, rateLimit: rateLimit}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}

// Close stops the rate limiter's background eviction.
func (rt *Router) Close() {
	rt.rateLimit.Stop()
}

// envelopeUnmatched answers requests no route accepts with the JSON error
// envelope instead of the mux's plain-text 404 and 405 pages.
func envelopeUnmatched(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		capture := &statusCapture{header: make(http.Header)}
		h.ServeHTTP(capture, r)
		if allow := capture.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		status := capture.status
		if status == 0 || status < http.StatusBadRequest {
			status = http.StatusNotFound
		}
		httpx.WriteError(w, errs.NewStatusError(status))
	})
}

// statusCapture records the status a handler chose and discards its body.
type statusCapture struct {
	header http.Header
	status int
}

func (c *statusCapture) Header() http.Header { return c.header }

func (c *statusCapture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
}

func (c *statusCapture) Write(b []byte) (int, error) {
	c.WriteHeader(http.StatusOK)
	return len(b), nil
}
