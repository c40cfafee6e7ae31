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

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
	"homerun-fantasy/internal/teams"
	"homerun-fantasy/internal/testutil"
)

func testLeaders(n int) domain.Snapshot {
	players := make([]domain.Player, n)
	for i := range players {
		players[i] = domain.Player{
			ID:       "p" + string(rune('0'+i/10)) + string(rune('0'+i%10)),
			Name:     "Player",
			HomeRuns: n - i,
		}
	}
	return domain.Snapshot{
		Season:    2025,
		Players:   players,
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Source:    domain.SourceLive,
	}
}

type fixture struct {
	handler *Handler
	store   *store.MemoryStore
}

func newFixture(provider *testutil.StubProvider, statusFn func() reconcile.Status) fixture {
	memStore := store.NewMemoryStore()
	svc := teams.NewService(memStore, provider, nil, nil, 2025)
	h := NewHandler(svc, memStore, provider, config.DefaultTierPolicy(), nil, statusFn, 2025)
	return fixture{handler: h, store: memStore}
}

func (f fixture) seedTeam(t *testing.T, id string, aggregate int, created time.Time) {
	t.Helper()
	err := f.store.CreateTeam(context.Background(), domain.Team{
		ID:                id,
		Name:              "Team " + id,
		OwnerID:           "owner-" + id,
		Roster:            testutil.Roster([6]string{"p01", "p02", "p03", "p04", "p05", "p06"}),
		PerPlayerHomeRuns: []int{0, 0, 0, 0, 0, 0},
		AggregateHomeRuns: aggregate,
		CreatedAt:         created,
		LastUpdated:       created,
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func doRequest(h nethttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(6)}, nil)
	router := NewRouter(f.handler, nil)

	rec := doRequest(router, nethttp.MethodGet, "/health", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(router, nethttp.MethodPost, "/health", "")
	if rec.Code != nethttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestReady(t *testing.T) {
	ready := reconcile.Status{LastSuccess: time.Now()}
	notReady := reconcile.Status{LastError: "upstream down", ConsecutiveFailures: 5, LastSuccess: time.Now()}

	tests := []struct {
		name     string
		statusFn func() reconcile.Status
		wantCode int
	}{
		{"no status source", nil, nethttp.StatusOK},
		{"ready", func() reconcile.Status { return ready }, nethttp.StatusOK},
		{"failing", func() reconcile.Status { return notReady }, nethttp.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(6)}, tt.statusFn)
			rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/ready", "")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLeaderboardRanksTeams(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(6)}, nil)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.seedTeam(t, "a", 30, base)
	f.seedTeam(t, "b", 30, base.Add(time.Hour))
	f.seedTeam(t, "c", 25, base.Add(2*time.Hour))

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/leaderboard", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.LeaderboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Season != 2025 || len(resp.Teams) != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Teams[0].Rank != 1 || resp.Teams[1].Rank != 1 || resp.Teams[2].Rank != 3 {
		t.Fatalf("unexpected ranks: %d %d %d", resp.Teams[0].Rank, resp.Teams[1].Rank, resp.Teams[2].Rank)
	}
	if resp.Teams[0].ID != "a" || resp.Teams[1].ID != "b" {
		t.Fatalf("ties must keep creation order: %s %s", resp.Teams[0].ID, resp.Teams[1].ID)
	}
	if !resp.LastUpdated.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("expected most recent update time, got %v", resp.LastUpdated)
	}
	if resp.Snapshot == nil || resp.Snapshot.Source != domain.SourceLive || resp.Snapshot.Stale {
		t.Fatalf("unexpected snapshot provenance: %+v", resp.Snapshot)
	}
}

func TestLeaderboardServesWithoutProvider(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Err: errors.New("upstream down")}, nil)
	f.seedTeam(t, "a", 12, time.Now())

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/leaderboard", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200 without provider, got %d", rec.Code)
	}

	var resp domain.LeaderboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Snapshot != nil {
		t.Fatal("snapshot provenance must be omitted when the provider fails")
	}
	if len(resp.Teams) != 1 {
		t.Fatalf("stored teams must still serve, got %d", len(resp.Teams))
	}
}

func TestLeaderboardLabelsStaleSnapshot(t *testing.T) {
	snap := testLeaders(6)
	snap.Source = domain.SourceCache
	snap.Stale = true
	f := newFixture(&testutil.StubProvider{Snapshot: snap}, nil)

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/leaderboard", "")
	var resp domain.LeaderboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Snapshot == nil || !resp.Snapshot.Stale || resp.Snapshot.Source != domain.SourceCache {
		t.Fatalf("stale snapshots must stay labeled: %+v", resp.Snapshot)
	}
}

func TestPlayersReturnsTiers(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(20)}, nil)

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/players", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.PlayersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Tier1) != 6 || len(resp.Tier2) != 6 || len(resp.Tier3) != 6 || len(resp.Wildcards) != 2 {
		t.Fatalf("unexpected tier sizes: %d/%d/%d/%d",
			len(resp.Tier1), len(resp.Tier2), len(resp.Tier3), len(resp.Wildcards))
	}
	if resp.Snapshot.Source != domain.SourceLive {
		t.Fatalf("unexpected snapshot provenance: %+v", resp.Snapshot)
	}
}

func TestPlayersUpstreamFailure(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Err: errors.New("upstream down")}, nil)

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/players", "")
	if rec.Code != nethttp.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestCreateTeamEndpoint(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(10)}, nil)
	router := NewRouter(f.handler, nil)

	body := `{
		"name": "Dinger Squad",
		"ownerId": "owner-1",
		"roster": {
			"tier1": {"id": "p01"}, "tier2": {"id": "p02"}, "tier3": {"id": "p03"},
			"wildcard1": {"id": "p04"}, "wildcard2": {"id": "p05"}, "wildcard3": {"id": "p06"}
		}
	}`
	rec := doRequest(router, nethttp.MethodPost, "/teams", body)
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var team domain.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if team.ID == "" || team.Name != "Dinger Squad" {
		t.Fatalf("unexpected team: %+v", team)
	}
}

func TestCreateTeamRejectsBadInput(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(10)}, nil)
	router := NewRouter(f.handler, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{`, nethttp.StatusBadRequest},
		{"missing name", `{"ownerId": "o", "roster": {}}`, nethttp.StatusBadRequest},
		{"incomplete roster", `{
			"name": "X", "ownerId": "o",
			"roster": {"tier1": {"id": "p01"}}
		}`, nethttp.StatusBadRequest},
		{"duplicate wildcards", `{
			"name": "X", "ownerId": "o",
			"roster": {
				"tier1": {"id": "p01"}, "tier2": {"id": "p02"}, "tier3": {"id": "p03"},
				"wildcard1": {"id": "p04"}, "wildcard2": {"id": "p04"}, "wildcard3": {"id": "p06"}
			}
		}`, nethttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, nethttp.MethodPost, "/teams", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateTeamOwnerLimitConflict(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(10)}, nil)
	router := NewRouter(f.handler, nil)

	body := `{
		"name": "Dinger Squad",
		"ownerId": "owner-1",
		"roster": {
			"tier1": {"id": "p01"}, "tier2": {"id": "p02"}, "tier3": {"id": "p03"},
			"wildcard1": {"id": "p04"}, "wildcard2": {"id": "p05"}, "wildcard3": {"id": "p06"}
		}
	}`
	for i := 0; i < teams.MaxTeamsPerOwner; i++ {
		if rec := doRequest(router, nethttp.MethodPost, "/teams", body); rec.Code != nethttp.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i+1, rec.Code)
		}
	}
	if rec := doRequest(router, nethttp.MethodPost, "/teams", body); rec.Code != nethttp.StatusConflict {
		t.Fatalf("expected 409 past the owner limit, got %d", rec.Code)
	}
}

func TestListTeams(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(6)}, nil)
	f.seedTeam(t, "a", 10, time.Now())

	rec := doRequest(NewRouter(f.handler, nil), nethttp.MethodGet, "/teams", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Teams []domain.Team `json:"teams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Teams) != 1 || resp.Teams[0].ID != "a" {
		t.Fatalf("unexpected teams: %+v", resp.Teams)
	}
}

func TestTeamByID(t *testing.T) {
	f := newFixture(&testutil.StubProvider{Snapshot: testLeaders(6)}, nil)
	f.seedTeam(t, "a", 10, time.Now())
	router := NewRouter(f.handler, nil)

	rec := doRequest(router, nethttp.MethodGet, "/teams/a", "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var team domain.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if team.ID != "a" {
		t.Fatalf("unexpected team: %+v", team)
	}

	if rec := doRequest(router, nethttp.MethodGet, "/teams/missing", ""); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := doRequest(router, nethttp.MethodGet, "/teams/a/extra", ""); rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400 for nested path, got %d", rec.Code)
	}
}
