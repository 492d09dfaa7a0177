package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shortlink/internal/domain"
	"shortlink/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRateLimiter is a mock implementation of RateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Int(1), args.Get(2).(time.Time), args.Error(3)
}

func (m *MockRateLimiter) MaxRequests() int {
	return m.Called().Int(0)
}

func setupRateLimitedRouter(t *testing.T, limiter RateLimiter) (http.Handler, *MockLinkService) {
	t.Helper()
	return setupRateLimitedRouterWith(t, RouterOptions{RateLimiter: limiter})
}

func setupRateLimitedRouterWith(t *testing.T, opts RouterOptions) (http.Handler, *MockLinkService) {
	t.Helper()
	mockService := new(MockLinkService)
	handler := NewHandler(mockService, logger.Discard(), "")
	return NewRouter(handler, quietLogger(), opts), mockService
}

func TestRateLimit_Allowed(t *testing.T) {
	// Arrange
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouter(t, limiter)

	reset := time.Now().Add(time.Minute)
	limiter.On("Allow", mock.Anything, "10.0.0.1").Return(true, 4, reset, nil)
	limiter.On("MaxRequests").Return(5)
	mockService.On("Shorten", mock.Anything, "https://duck.com").Return(domain.Key(9), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten?url=https://duck.com", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9", w.Body.String())
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	limiter.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestRateLimit_Exceeded(t *testing.T) {
	// Arrange
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouter(t, limiter)

	limiter.On("Allow", mock.Anything, "10.0.0.1").Return(false, 0, time.Now().Add(30*time.Second), nil)
	limiter.On("MaxRequests").Return(5)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten?url=https://duck.com", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	mockService.AssertNotCalled(t, "Shorten", mock.Anything, mock.Anything)
}

func TestRateLimit_ForwardedHeaderIgnoredByDefault(t *testing.T) {
	// Arrange
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouter(t, limiter)

	limiter.On("Allow", mock.Anything, "10.0.0.1").Return(false, 0, time.Now().Add(30*time.Second), nil)
	limiter.On("MaxRequests").Return(5)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten?url=https://duck.com", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	limiter.AssertExpectations(t)
	mockService.AssertNotCalled(t, "Shorten", mock.Anything, mock.Anything)
}

func TestRateLimit_TrustedProxyUsesForwardedFor(t *testing.T) {
	// Arrange
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouterWith(t, RouterOptions{RateLimiter: limiter, TrustProxyHeaders: true})

	limiter.On("Allow", mock.Anything, "203.0.113.9").Return(true, 4, time.Now().Add(time.Minute), nil)
	limiter.On("MaxRequests").Return(5)
	mockService.On("Shorten", mock.Anything, "https://duck.com").Return(domain.Key(3), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/shorten?url=https://duck.com", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	limiter.AssertExpectations(t)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouter(t, limiter)

	limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 0, time.Time{}, assert.AnError)
	mockService.On("Shorten", mock.Anything, "https://duck.com").Return(domain.Key(1), nil)

	w := serve(router, http.MethodPost, "/api/shorten?url=https://duck.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())
}

func TestRateLimit_OnlyGuardsShorten(t *testing.T) {
	limiter := new(MockRateLimiter)
	router, mockService := setupRateLimitedRouter(t, limiter)

	mockService.On("Redirect", mock.Anything, domain.Key(5)).Return("https://duck.com", nil)

	w := serve(router, http.MethodGet, "/5")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything)
}

func TestRouteLabel_Unrouted(t *testing.T) {
	assert.Equal(t, "unmatched", routeLabel(httptest.NewRequest(http.MethodGet, "/5", nil)))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = logger.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(header)
	require.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	router, _ := setupTestRouter(t, "")

	w := serve(router, http.MethodOptions, "/api/shorten")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "Remote addr", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "Forwarded for trusted", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, trustProxy: true, want: "1.2.3.4"},
		{name: "Real IP trusted", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "5.6.7.8"}, trustProxy: true, want: "5.6.7.8"},
		{name: "Forwarded for untrusted", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "1.2.3.4"}, want: "10.0.0.1"},
		{name: "Real IP untrusted", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "5.6.7.8"}, want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trustProxy))
		})
	}
}
