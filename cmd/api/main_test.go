package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-mouse-storefront/internal/handlers"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/owner"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, _ := setupRouter(handlers.HandlerConfig{
		Store:     kv.Watch(kv.NewMemory()),
		Owner:     owner.Static(false),
		TTLWindow: time.Hour,
	}, []string{"http://localhost:5173"})
	return r
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/checkout", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", handlers.HeaderIdempotencyKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
