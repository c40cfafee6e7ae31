package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
	"homerun-fantasy/internal/testutil"
)

const testToken = "sekrit"

type adminFixture struct {
	router nethttp.Handler
	store  *store.MemoryStore
}

func newAdminFixture(t *testing.T, provider *testutil.StubProvider, token string) adminFixture {
	t.Helper()
	memStore := store.NewMemoryStore()
	rec := reconcile.New(provider, memStore, nil, nil, nil, 2025)
	runner := reconcile.NewRunner(rec, nil, nil, time.Hour)
	admin := NewAdminHandler(runner, rec, memStore, token, nil)

	mux := nethttp.NewServeMux()
	mux.HandleFunc("/admin/reconcile", admin.Reconcile)
	mux.HandleFunc("/admin/teams/", admin.TeamActions)
	return adminFixture{router: mux, store: memStore}
}

func (f adminFixture) seed(t *testing.T, id string) {
	t.Helper()
	err := f.store.CreateTeam(context.Background(), domain.Team{
		ID:                id,
		Name:              "Team " + id,
		OwnerID:           "owner",
		Roster:            testutil.Roster([6]string{"p1", "p2", "p3", "p4", "p5", "p6"}),
		PerPlayerHomeRuns: []int{0, 0, 0, 0, 0, 0},
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func adminRequest(h nethttp.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func adminSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Season: 2025,
		Players: []domain.Player{
			{ID: "p1", HomeRuns: 10},
			{ID: "p2", HomeRuns: 8},
		},
		FetchedAt: time.Now().UTC(),
		Source:    domain.SourceLive,
	}
}

func TestAdminAuthorization(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		wantCode   int
	}{
		{"valid token", testToken, testToken, nethttp.StatusOK},
		{"wrong token", testToken, "other", nethttp.StatusUnauthorized},
		{"missing token", testToken, "", nethttp.StatusUnauthorized},
		{"no token configured", "", "anything", nethttp.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, tt.configured)
			rec := adminRequest(f.router, nethttp.MethodPost, "/admin/reconcile", tt.sent, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAdminReconcileReturnsReport(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, testToken)
	f.seed(t, "a")

	rec := adminRequest(f.router, nethttp.MethodPost, "/admin/reconcile", testToken, "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report domain.ReconcileReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if report.UpdatedTeamCount != 1 || report.Season != 2025 {
		t.Fatalf("unexpected report: %+v", report)
	}

	team, err := f.store.GetTeam(context.Background(), "a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if team.AggregateHomeRuns != 18 {
		t.Fatalf("expected aggregate 18, got %d", team.AggregateHomeRuns)
	}
}

func TestAdminReconcileUpstreamFailure(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Err: errors.New("upstream down")}, testToken)

	rec := adminRequest(f.router, nethttp.MethodPost, "/admin/reconcile", testToken, "")
	if rec.Code != nethttp.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "upstream down") {
		t.Fatalf("failure reason must be surfaced: %s", rec.Body.String())
	}
}

func TestAdminSetPaid(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, testToken)
	f.seed(t, "a")

	rec := adminRequest(f.router, nethttp.MethodPost, "/admin/teams/a/paid", testToken, `{"paid": true}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	team, err := f.store.GetTeam(context.Background(), "a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !team.Paid {
		t.Fatal("expected paid flag set")
	}

	rec = adminRequest(f.router, nethttp.MethodPost, "/admin/teams/missing/paid", testToken, `{"paid": true}`)
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = adminRequest(f.router, nethttp.MethodPost, "/admin/teams/a/paid", testToken, `{`)
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestAdminDeleteTeam(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, testToken)
	f.seed(t, "a")

	rec := adminRequest(f.router, nethttp.MethodDelete, "/admin/teams/a", testToken, "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := f.store.GetTeam(context.Background(), "a"); !errors.Is(err, store.ErrTeamNotFound) {
		t.Fatalf("expected team gone, got %v", err)
	}

	rec = adminRequest(f.router, nethttp.MethodDelete, "/admin/teams/a", testToken, "")
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestAdminReconcileSingleTeam(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, testToken)
	f.seed(t, "a")

	rec := adminRequest(f.router, nethttp.MethodPost, "/admin/teams/a/reconcile", testToken, "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var delta domain.TeamDelta
	if err := json.Unmarshal(rec.Body.Bytes(), &delta); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if delta.TeamID != "a" || delta.NewAggregate != 18 {
		t.Fatalf("unexpected delta: %+v", delta)
	}

	rec = adminRequest(f.router, nethttp.MethodPost, "/admin/teams/missing/reconcile", testToken, "")
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminUnknownAction(t *testing.T) {
	f := newAdminFixture(t, &testutil.StubProvider{Snapshot: adminSnapshot()}, testToken)
	f.seed(t, "a")

	rec := adminRequest(f.router, nethttp.MethodGet, "/admin/teams/a", testToken, "")
	if rec.Code != nethttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
