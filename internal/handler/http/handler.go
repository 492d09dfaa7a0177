package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shortlink/internal/domain"
	"shortlink/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Response bodies the frontend bundle matches on
const (
	msgEmptyURL    = "URL is empty!"
	msgInvalidLink = "Invalid or expired link!"
)

// LinkService interface defines the service methods needed by the handler
// Using an interface instead of concrete type allows for easy mocking in tests
type LinkService interface {
	Shorten(ctx context.Context, url string) (domain.Key, error)
	Redirect(ctx context.Context, key domain.Key) (string, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	links  LinkService
	logger *logger.Logger
	static *staticBundle
}

// NewHandler creates a new HTTP handler.
// staticDir is the prebuilt frontend bundle; an empty value disables static serving.
func NewHandler(links LinkService, log *logger.Logger, staticDir string) *Handler {
	return &Handler{
		links:  links,
		logger: log,
		static: newStaticBundle(staticDir),
	}
}

// Shorten handles POST /api/shorten?url=...
// Responds with the decimal key as plain text.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	key, err := h.links.Shorten(r.Context(), queryParam(r.URL.RawQuery, "url"))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			respondText(w, http.StatusBadRequest, msgEmptyURL)
			return
		}
		h.logger.WithContext(r.Context()).Error("Failed to shorten URL", "error", err)
		respondText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondText(w, http.StatusOK, key.String())
}

// Redirect handles GET /{key}
// Path segments that are not a key are tried against the static bundle first.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "key")

	key, err := domain.ParseKey(segment)
	if err != nil {
		if h.static.exists(r.URL.Path) {
			h.static.ServeHTTP(w, r)
			return
		}
		respondText(w, http.StatusNotFound, msgInvalidLink)
		return
	}

	target, err := h.links.Redirect(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.WithContext(r.Context()).Warn("Link not found", "key", key.String())
			respondText(w, http.StatusNotFound, msgInvalidLink)
			return
		}
		h.logger.WithContext(r.Context()).Error("Failed to resolve link", "key", key.String(), "error", err)
		respondText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The stored URL goes out untouched. http.Redirect would rewrite
	// scheme-less values relative to the request path.
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusSeeOther)
}

// queryParam returns the first value of name in a raw query string.
// Pairs are split on '&' only, so semicolons stay part of the value;
// url.ParseQuery drops any pair that contains one.
func queryParam(rawQuery, name string) string {
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key != name {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return rawValue
		}
		return value
	}
	return ""
}

// ServeStatic handles GET / and any other path owned by the frontend bundle
func (h *Handler) ServeStatic(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}

// HealthCheck handles GET /healthcheck
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
