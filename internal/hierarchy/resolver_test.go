package hierarchy_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task-description-updater/internal/hierarchy"
	"task-description-updater/pkg/clickup"
	pkgLog "task-description-updater/pkg/log"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newFakeClickUp serves a team with two spaces. Both spaces contain a
// folder named "Shared" to exercise name collisions.
func newFakeClickUp(t *testing.T, calls *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			*calls = append(*calls, r.URL.Path)
			next(w, r)
		}
	}

	mux.HandleFunc("/team", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"teams": []clickup.Team{{ID: "99", Name: "Other"}, {ID: "1", Name: "Maintenance 216"}}})
	}))
	mux.HandleFunc("/team/1/space", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"spaces": []clickup.Space{
			{ID: "s1", Name: "Operations"},
			{ID: "s2", Name: "Field"},
			{ID: "s3", Name: "Archive"},
		}})
	}))
	mux.HandleFunc("/space/s1/folder", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"folders": []clickup.Folder{{ID: "f1", Name: "Josh Tasks"}, {ID: "f2", Name: "Shared"}}})
	}))
	mux.HandleFunc("/space/s2/folder", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"folders": []clickup.Folder{{ID: "f3", Name: "Shared"}}})
	}))
	mux.HandleFunc("/folder/f1/list", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"lists": []clickup.List{{ID: "l1", Name: "Dispatch"}, {ID: "l2", Name: "Backlog"}}})
	}))
	mux.HandleFunc("/folder/f3/list", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"lists": []clickup.List{{ID: "l3", Name: "Misc"}}})
	}))
	mux.HandleFunc("/user", record(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"user": map[string]any{"id": 5, "username": "bot"}})
	}))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(ts *httptest.Server) *clickup.Client {
	return clickup.NewClient(clickup.Config{
		APIKey: "pk",
		URLs: clickup.URLs{
			Team:   ts.URL + "/team",
			Space:  ts.URL + "/space",
			Folder: ts.URL + "/folder",
			User:   ts.URL + "/user",
		},
	})
}

func baseTarget() hierarchy.Target {
	return hierarchy.Target{
		TeamName:           "Maintenance 216",
		SpaceNames:         []string{"Operations", "Field"},
		DispatchFolderName: "Josh Tasks",
		DispatchListName:   "Dispatch",
	}
}

func TestResolve(t *testing.T) {
	var calls []string
	ts := newFakeClickUp(t, &calls)

	h, err := hierarchy.New(newClient(ts), baseTarget(), pkgLog.NewNop()).Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.TeamID != "1" {
		t.Errorf("unexpected team id %s", h.TeamID)
	}
	if strings.Join(h.SpaceIDs, ",") != "s1,s2" {
		t.Errorf("unexpected space ids %v", h.SpaceIDs)
	}
	if h.Folders["Josh Tasks"] != "f1" {
		t.Errorf("unexpected folders %v", h.Folders)
	}
	if h.Folders["Shared"] != "f3" {
		t.Errorf("colliding folder name should keep the last space's id, got %s", h.Folders["Shared"])
	}
	if h.Lists["Josh Tasks"]["Backlog"] != "l2" || h.Lists["Shared"]["Misc"] != "l3" {
		t.Errorf("unexpected lists %v", h.Lists)
	}
	if h.DispatchListID != "l1" {
		t.Errorf("unexpected dispatch list id %s", h.DispatchListID)
	}
	if h.ActiveUser.Username != "bot" {
		t.Errorf("unexpected active user %+v", h.ActiveUser)
	}

	for _, c := range calls {
		if c == "/folder/f2/list" {
			t.Errorf("overwritten folder id should not be queried")
		}
	}
	if calls[len(calls)-1] != "/user" {
		t.Errorf("active user should be fetched last, calls: %v", calls)
	}
}

func TestResolveLookupFailures(t *testing.T) {
	var calls []string
	ts := newFakeClickUp(t, &calls)

	tests := []struct {
		name   string
		mutate func(*hierarchy.Target)
		want   error
	}{
		{"team", func(tg *hierarchy.Target) { tg.TeamName = "Nope" }, hierarchy.ErrTeamNotFound},
		{"space", func(tg *hierarchy.Target) { tg.SpaceNames = []string{"Operations", "Nope"} }, hierarchy.ErrSpaceNotFound},
		{"folder", func(tg *hierarchy.Target) { tg.DispatchFolderName = "Nope" }, hierarchy.ErrFolderNotFound},
		{"list", func(tg *hierarchy.Target) { tg.DispatchListName = "Nope" }, hierarchy.ErrListNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := baseTarget()
			tt.mutate(&target)

			_, err := hierarchy.New(newClient(ts), target, pkgLog.NewNop()).Resolve(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, hierarchy.ErrLookup) {
				t.Errorf("expected error to wrap ErrLookup, got %v", err)
			}
		})
	}
}

func TestResolveMismatchedIDsUseResolved(t *testing.T) {
	var calls []string
	ts := newFakeClickUp(t, &calls)

	target := baseTarget()
	target.TeamID = "stale"
	target.DispatchListID = "stale"

	h, err := hierarchy.New(newClient(ts), target, pkgLog.NewNop()).Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.TeamID != "1" || h.DispatchListID != "l1" {
		t.Errorf("resolved ids should win: %+v", h)
	}
}

func TestResolveAPIFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
	}))
	defer ts.Close()

	_, err := hierarchy.New(newClient(ts), baseTarget(), pkgLog.NewNop()).Resolve(context.Background())
	if !errors.Is(err, clickup.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
	if errors.Is(err, hierarchy.ErrLookup) {
		t.Errorf("API failures are not lookup failures")
	}
}

// mockLogger records warnings.
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprint(args...))
}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func TestResolveDuplicateSpaceNameKeepsFirst(t *testing.T) {
	var calls []string
	base := newFakeClickUp(t, &calls)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/team/1/space" {
			writeJSON(w, map[string]any{"spaces": []clickup.Space{
				{ID: "s1", Name: "Operations"},
				{ID: "s4", Name: "Operations"},
				{ID: "s2", Name: "Field"},
			}})
			return
		}
		base.Config.Handler.ServeHTTP(w, r)
	}))
	defer ts.Close()

	l := &mockLogger{}
	h, err := hierarchy.New(newClient(ts), baseTarget(), l).Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(h.SpaceIDs) != 2 || h.SpaceIDs[0] != "s1" || h.SpaceIDs[1] != "s2" {
		t.Errorf("expected one id per space name, got %v", h.SpaceIDs)
	}
	if len(l.warnings) != 1 || !strings.Contains(l.warnings[0], "s4") {
		t.Errorf("expected one warning naming the ignored space, got %q", l.warnings)
	}
	for _, c := range calls {
		if strings.Contains(c, "/space/s4/") {
			t.Errorf("ignored space must not be queried: %v", calls)
		}
	}
}
