package httpserver_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	_ "task-description-updater/docs"
	"task-description-updater/internal/httpserver"
	"task-description-updater/internal/middleware"
	"task-description-updater/internal/poller"
	"task-description-updater/pkg/log"
)

type fakeSource struct{ st poller.Status }

func (f fakeSource) Status() poller.Status { return f.st }

func newServer(t *testing.T, port int) *httpserver.HTTPServer {
	t.Helper()
	srv, err := httpserver.New(log.NewNop(), httpserver.Config{
		Logger:     log.NewNop(),
		Port:       port,
		Mode:       gin.TestMode,
		Middleware: middleware.Config{RateLimitPerMin: 6000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return srv
}

func do(srv *httpserver.HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewValidates(t *testing.T) {
	_, err := httpserver.New(log.NewNop(), httpserver.Config{Mode: gin.TestMode})
	if err == nil {
		t.Fatal("expected missing port to fail")
	}
}

func TestHealthRoutes(t *testing.T) {
	srv := newServer(t, 8080)

	for _, path := range []string{"/health", "/live"} {
		if w := do(srv, path); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestSwaggerDoc(t *testing.T) {
	srv := newServer(t, 8080)

	w := do(srv, "/swagger/doc.json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/status"]; !ok {
		t.Errorf("expected /status in swagger paths")
	}
}

func TestReadyAndStatus(t *testing.T) {
	srv := newServer(t, 8080)

	if w := do(srv, "/ready"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready before attach: expected 503, got %d", w.Code)
	}
	if w := do(srv, "/status"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status before attach: expected 503, got %d", w.Code)
	}

	srv.Attach(fakeSource{st: poller.Status{
		ListID:         "l1",
		Watermark:      1700000000000,
		CyclesRun:      2,
		Running:        true,
		LastCycleStart: time.Now(),
		LastCycle:      poller.CycleResult{CycleID: "c", Fetched: 3, Updated: 1},
	}})

	if w := do(srv, "/ready"); w.Code != http.StatusOK {
		t.Errorf("ready after attach: expected 200, got %d", w.Code)
	}

	w := do(srv, "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", w.Code)
	}

	var body struct {
		Data struct {
			ListID         string  `json:"list_id"`
			Watermark      int64   `json:"watermark"`
			CyclesRun      int     `json:"cycles_run"`
			LastCycleStart *string `json:"last_cycle_start"`
			LastCycleEnd   *string `json:"last_cycle_end"`
			LastCycle      struct {
				Fetched int `json:"fetched"`
				Updated int `json:"updated"`
			} `json:"last_cycle"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	d := body.Data
	if d.ListID != "l1" || d.Watermark != 1700000000000 || d.CyclesRun != 2 {
		t.Errorf("unexpected status body: %s", w.Body.String())
	}
	if d.LastCycle.Fetched != 3 || d.LastCycle.Updated != 1 {
		t.Errorf("unexpected last cycle: %+v", d.LastCycle)
	}
	if d.LastCycleStart == nil || d.LastCycleEnd != nil {
		t.Errorf("expected only the start time to be set: %s", w.Body.String())
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	srv := newServer(t, port)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
