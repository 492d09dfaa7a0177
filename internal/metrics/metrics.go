package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
// Using promauto automatically registers metrics with the default registry

var (
	// ==================== HTTP METRICS ====================

	// HTTPRequestDuration tracks the duration of HTTP requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsTotal counts total HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsInFlight tracks currently processing requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// ==================== RATE LIMITING METRICS ====================

	// RateLimitedRequestsTotal counts rate-limited requests
	RateLimitedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of rate-limited requests",
		},
	)

	// RateLimitAllowedRequestsTotal counts allowed requests
	RateLimitAllowedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_allowed_requests_total",
			Help: "Total number of requests allowed by rate limiter",
		},
	)

	// ==================== BUSINESS METRICS ====================

	// LinksShortenedTotal counts successful shorten operations
	LinksShortenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "links_shortened_total",
			Help: "Total number of links shortened",
		},
	)

	// ShortenRejectedTotal counts shorten requests with an empty URL
	ShortenRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorten_rejected_total",
			Help: "Total number of shorten requests rejected for an empty URL",
		},
	)

	// RedirectsTotal counts successful redirects
	RedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirects_total",
			Help: "Total number of successful redirects",
		},
	)

	// RedirectMissesTotal counts lookups of unknown keys
	RedirectMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_misses_total",
			Help: "Total number of redirects for unknown keys",
		},
	)
)

// RegisterStoredLinks exposes the store size as the stored_links gauge on reg.
// The value is read on every scrape. Call it once per registry.
func RegisterStoredLinks(reg prometheus.Registerer, size func() int) prometheus.GaugeFunc {
	return promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "stored_links",
			Help: "Number of links currently held in memory",
		},
		func() float64 { return float64(size()) },
	)
}

// RecordLinkShortened increments the shortened links counter
func RecordLinkShortened() {
	LinksShortenedTotal.Inc()
}

// RecordShortenRejected increments the rejected shorten counter
func RecordShortenRejected() {
	ShortenRejectedTotal.Inc()
}

// RecordRedirect increments redirect counter
func RecordRedirect() {
	RedirectsTotal.Inc()
}

// RecordRedirectMiss increments the unknown key counter
func RecordRedirectMiss() {
	RedirectMissesTotal.Inc()
}

// RecordRateLimited increments rate-limited requests counter
func RecordRateLimited() {
	RateLimitedRequestsTotal.Inc()
}

// RecordRateLimitAllowed increments allowed requests counter
func RecordRateLimitAllowed() {
	RateLimitAllowedRequestsTotal.Inc()
}
