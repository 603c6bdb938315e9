package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newmandigital/catalog/internal/adapters/http/middleware"
)

type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.retryAfter, s.err
}

func newEngine(limiter middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.LogRequest())
	engine.POST("/products/:id/stock", middleware.RateLimit(limiter, 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		limiter        *stubLimiter
		wantStatus     int
		wantRetryAfter string
	}{
		{"allowed", &stubLimiter{allowed: true}, http.StatusNoContent, ""},
		{"throttled", &stubLimiter{retryAfter: 1500 * time.Millisecond}, http.StatusTooManyRequests, "2"},
		{"limiter down fails open", &stubLimiter{err: errors.New("redis down")}, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/products/abc/stock", nil)
			newEngine(tt.limiter).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Fatalf("expected Retry-After %q, got %q", tt.wantRetryAfter, got)
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != "POST:/products/:id/stock:192.0.2.1" {
				t.Fatalf("unexpected limiter keys %v", tt.limiter.keys)
			}
		})
	}
}

func TestLogRequest_RequestID(t *testing.T) {
	engine := newEngine(&stubLimiter{allowed: true})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products/abc/stock", nil))
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Fatal("expected a request id header")
		}
	})

	t.Run("propagated when present", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products/abc/stock", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		engine.ServeHTTP(w, req)
		if got := w.Header().Get(middleware.RequestIDHeader); got != "req-42" {
			t.Fatalf("expected req-42, got %q", got)
		}
	})
}
