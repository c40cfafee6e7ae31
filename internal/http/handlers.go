// Package http exposes the public and admin HTTP surface.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/leaderboard"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/providers"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
	"homerun-fantasy/internal/teams"
	"homerun-fantasy/internal/tiers"
)

type nowFunc func() time.Time

// Handler wires the public HTTP routes to the domain services.
type Handler struct {
	teamSvc  *teams.Service
	store    store.TeamStore
	provider providers.StatsProvider
	policy   config.TierPolicy
	logger   *slog.Logger
	now      nowFunc
	statusFn func() reconcile.Status
	season   int
}

// NewHandler constructs a Handler with defaults.
func NewHandler(teamSvc *teams.Service, teamStore store.TeamStore, provider providers.StatsProvider, policy config.TierPolicy, logger *slog.Logger, statusFn func() reconcile.Status, season int) *Handler {
	return &Handler{
		teamSvc:  teamSvc,
		store:    teamStore,
		provider: provider,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
		season:   season,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the reconciliation loop.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Leaderboard returns all teams ranked by aggregate home runs. Rankings come
// from stored stats, so a provider outage only hides snapshot provenance.
func (h *Handler) Leaderboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	allTeams, err := h.store.ListTeams(r.Context())
	if err != nil {
		logging.Error(logger, "leaderboard list failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load teams", logger)
		return
	}

	resp := domain.LeaderboardResponse{
		Season: h.season,
		Teams:  leaderboard.Rank(allTeams),
	}
	for _, t := range allTeams {
		if t.LastUpdated.After(resp.LastUpdated) {
			resp.LastUpdated = t.LastUpdated
		}
	}
	if snapshot, err := h.provider.FetchLeaders(r.Context(), h.season); err == nil {
		resp.Snapshot = &domain.SnapshotInfo{
			Source:    snapshot.Source,
			Stale:     snapshot.Stale,
			FetchedAt: snapshot.FetchedAt,
		}
	}

	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// Players returns the tiered draft pools built from the current leaderboard.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	snapshot, err := h.provider.FetchLeaders(r.Context(), h.season)
	if err != nil {
		logging.Error(logger, "player pools unavailable", err)
		writeError(w, r, nethttp.StatusBadGateway, "stats upstream unavailable", logger)
		return
	}

	resp := domain.PlayersResponse{
		Season: snapshot.Season,
		Snapshot: domain.SnapshotInfo{
			Source:    snapshot.Source,
			Stale:     snapshot.Stale,
			FetchedAt: snapshot.FetchedAt,
		},
		TierSet: tiers.Classify(snapshot.Players, nil, h.policy),
	}
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// Teams handles team creation and listing.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodPost:
		h.createTeam(w, r)
	case nethttp.MethodGet:
		h.listTeams(w, r)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) createTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)

	var input teams.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", logger)
		return
	}

	team, err := h.teamSvc.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, teams.ErrTeamLimitReached):
			writeError(w, r, nethttp.StatusConflict, err.Error(), logger)
		case teams.IsValidationError(err):
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		default:
			logging.Error(logger, "team creation failed", err)
			writeError(w, r, nethttp.StatusInternalServerError, "failed to create team", logger)
		}
		return
	}

	writeJSON(w, nethttp.StatusCreated, team, logger)
}

func (h *Handler) listTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)

	allTeams, err := h.store.ListTeams(r.Context())
	if err != nil {
		logging.Error(logger, "team list failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load teams", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": allTeams}, logger)
}

// TeamByID returns a specific team if present.
func (h *Handler) TeamByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	id, ok := teamIDFromPath(r.URL.Path, "/teams/")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", logger)
		return
	}

	team, err := h.store.GetTeam(r.Context(), id)
	if errors.Is(err, store.ErrTeamNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
		return
	}
	if err != nil {
		logging.Error(logger, "team lookup failed", err, slog.String(logging.FieldTeamID, id))
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load team", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, logger)
}

// teamIDFromPath extracts the id segment after prefix, rejecting nested paths.
func teamIDFromPath(path, prefix string) (string, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || raw == path {
		return "", false
	}
	id, err := url.PathUnescape(raw)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}
