package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterOptions holds the optional pieces of the HTTP surface
type RouterOptions struct {
	// RateLimiter guards POST /api/shorten when set
	RateLimiter RateLimiter
	// TrustProxyHeaders keys the rate limiter on X-Forwarded-For / X-Real-IP
	// instead of the connection address
	TrustProxyHeaders bool
	// MetricsHandler is mounted at GET /metrics when set
	MetricsHandler http.Handler
}

// NewRouter wires the routes and the middleware chain.
//
// EXECUTION ORDER (outside-in):
// Request -> Recovery -> RequestID -> Logging -> CORS -> Metrics -> Handler
func NewRouter(h *Handler, log *slog.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(log),
		RequestIDMiddleware,
		LoggingMiddleware(log),
		CORSMiddleware,
		MetricsMiddleware,
	)

	r.Get("/healthcheck", h.HealthCheck)

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	shorten := r.With()
	if opts.RateLimiter != nil {
		shorten = r.With(RateLimitMiddleware(opts.RateLimiter, log, opts.TrustProxyHeaders))
	}
	shorten.Post("/api/shorten", h.Shorten)

	r.Get("/", h.ServeStatic)
	r.Get("/{key}", h.Redirect)
	r.Get("/*", h.ServeStatic)

	return r
}
