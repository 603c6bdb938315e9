package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/newmandigital/catalog/docs"
	"github.com/newmandigital/catalog/internal/adapters/config"
	adapthttp "github.com/newmandigital/catalog/internal/adapters/http"
	"github.com/newmandigital/catalog/internal/adapters/http/controllers"
	"github.com/newmandigital/catalog/internal/core/service"
)

type denyAll struct{ calls int }

func (d *denyAll) Allow(context.Context, string, int, time.Duration) (bool, time.Duration, error) {
	d.calls++
	return false, 30 * time.Second, nil
}

func newEngine(t *testing.T, limiter *denyAll) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	health := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "noop", Check: func(context.Context) error { return nil }},
	})
	// requests in these tests never reach the service
	products := controllers.NewProductController(&service.ProductService{})

	router := adapthttp.NewRouter(health, products, limiter, config.RateLimitConfig{Limit: 1, Window: time.Minute})
	engine, err := router.NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_ServesOpenAPIDocument(t *testing.T) {
	engine := newEngine(t, &denyAll{})

	w := serve(engine, http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc.Info.Title != "Catalog API" {
		t.Errorf("title: got %q", doc.Info.Title)
	}
	for _, path := range []string{"/api/v1/products", "/api/v1/products/{id}", "/api/v1/products/{id}/stock"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("missing path %s", path)
		}
	}
}

func TestRouter_Health(t *testing.T) {
	engine := newEngine(t, &denyAll{})

	if w := serve(engine, http.MethodGet, "/api/v1/health", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_RateLimitsWrites(t *testing.T) {
	limiter := &denyAll{}
	engine := newEngine(t, limiter)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/v1/products", http.StatusTooManyRequests},
		{http.MethodPost, "/api/v1/products/3f0e4c1a-8a4e-4a55-9f3c-0f1f3b8f5a10/stock", http.StatusTooManyRequests},
		// not limited: a malformed id is rejected by the controller
		{http.MethodGet, "/api/v1/products/not-a-uuid", http.StatusBadRequest},
		{http.MethodPut, "/api/v1/products/not-a-uuid", http.StatusBadRequest},
		{http.MethodDelete, "/api/v1/products/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path, `{}`)
		if w.Code != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, w.Code)
		}
	}
	if limiter.calls != 2 {
		t.Fatalf("expected the limiter to see 2 requests, got %d", limiter.calls)
	}
}
