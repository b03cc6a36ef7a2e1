package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"task-description-updater/internal/middleware"
	"task-description-updater/pkg/log"
)

func newEngine(cfg middleware.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := middleware.New(log.NewNop(), cfg)

	r := gin.New()
	r.Use(mw.CORS(), mw.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, remote, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remote
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	// 10 per minute gives a burst of one request
	r := newEngine(middleware.Config{RateLimitPerMin: 10})

	if w := get(r, "10.0.0.1:1234", ""); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}
	if w := get(r, "10.0.0.1:1234", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", w.Code)
	}
	// other clients have their own budget
	if w := get(r, "10.0.0.2:1234", ""); w.Code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(middleware.Config{RateLimitPerMin: 0})

	for i := 0; i < 20; i++ {
		if w := get(r, "10.0.0.1:1234", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{name: "any origin", origin: "http://a.example", want: "*"},
		{name: "allowed origin", origins: []string{"http://a.example"}, origin: "http://a.example", want: "http://a.example"},
		{name: "other origin", origins: []string{"http://a.example"}, origin: "http://b.example", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(middleware.Config{AllowedOrigins: tt.origins, RateLimitPerMin: 600})
			w := get(r, "10.0.0.1:1234", tt.origin)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("expected allow origin %q, got %q", tt.want, got)
			}
		})
	}
}
