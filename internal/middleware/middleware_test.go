package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.POST("/", func(c *gin.Context) { c.String(200, "ok") })

	// Regular request carries the headers
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin header")
	}

	// Preflight short-circuits with 204
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight code=%d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name     string
		requests int
		wantLast int
	}{
		{name: "under limit", requests: 5, wantLast: 200},
		{name: "over limit", requests: limit + 1, wantLast: http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// isolate the shared limiter state per case
			rateLimiterLock.Lock()
			clients = make(map[string]*client)
			rateLimiterLock.Unlock()

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter())
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

			var last int
			for i := 0; i < tc.requests; i++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = "10.0.0.1:1234"
				r.ServeHTTP(w, req)
				last = w.Code
			}
			if last != tc.wantLast {
				t.Fatalf("last status=%d, want %d", last, tc.wantLast)
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rateLimiterLock.Lock()
	clients = map[string]*client{
		"10.0.0.2": {lastSeen: time.Now().Add(-2 * window), count: limit},
	}
	rateLimiterLock.Unlock()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("stale client should reset, got %d", w.Code)
	}
}
