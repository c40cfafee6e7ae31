package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"

	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
)

// AdminHandler exposes admin-only endpoints, guarded by a bearer token.
// When no token is configured every admin request is rejected.
type AdminHandler struct {
	runner *reconcile.Runner
	rec    *reconcile.Reconciler
	store  store.TeamStore
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(runner *reconcile.Runner, rec *reconcile.Reconciler, teamStore store.TeamStore, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		runner: runner,
		rec:    rec,
		store:  teamStore,
		token:  token,
		logger: logger,
	}
}

// Reconcile runs a reconciliation immediately and returns its report.
func (h *AdminHandler) Reconcile(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	if h.runner == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "reconciler not configured", logger)
		return
	}
	report, err := h.runner.RunNow(r.Context())
	if err != nil {
		logging.Error(logger, "manual reconciliation failed", err)
		writeError(w, r, nethttp.StatusBadGateway, "reconciliation failed: "+err.Error(), logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, logger)
}

// TeamActions routes /admin/teams/{id}/... to the per-team operations.
func (h *AdminHandler) TeamActions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	rest := strings.TrimPrefix(r.URL.Path, "/admin/teams/")
	if rest == "" || rest == r.URL.Path {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", logger)
		return
	}

	id, action := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id, action = rest[:i], rest[i+1:]
	}
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", logger)
		return
	}

	switch {
	case action == "" && r.Method == nethttp.MethodDelete:
		h.deleteTeam(w, r, id)
	case action == "paid" && r.Method == nethttp.MethodPost:
		h.setPaid(w, r, id)
	case action == "reconcile" && r.Method == nethttp.MethodPost:
		h.reconcileTeam(w, r, id)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", logger)
	}
}

func (h *AdminHandler) deleteTeam(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	logger := loggerFromContext(r, h.logger)

	err := h.store.DeleteTeam(r.Context(), id)
	if errors.Is(err, store.ErrTeamNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
		return
	}
	if err != nil {
		logging.Error(logger, "team delete failed", err, slog.String(logging.FieldTeamID, id))
		writeError(w, r, nethttp.StatusInternalServerError, "failed to delete team", logger)
		return
	}
	logging.Info(logger, "team deleted", slog.String(logging.FieldTeamID, id))
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "deleted"}, logger)
}

func (h *AdminHandler) setPaid(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	logger := loggerFromContext(r, h.logger)

	var body struct {
		Paid bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", logger)
		return
	}

	err := h.store.SetPaid(r.Context(), id, body.Paid)
	if errors.Is(err, store.ErrTeamNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
		return
	}
	if err != nil {
		logging.Error(logger, "paid flag update failed", err, slog.String(logging.FieldTeamID, id))
		writeError(w, r, nethttp.StatusInternalServerError, "failed to update team", logger)
		return
	}
	logging.Info(logger, "paid flag updated",
		slog.String(logging.FieldTeamID, id), slog.Bool("paid", body.Paid))
	writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ok", "paid": body.Paid}, logger)
}

func (h *AdminHandler) reconcileTeam(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	logger := loggerFromContext(r, h.logger)

	if h.rec == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "reconciler not configured", logger)
		return
	}
	delta, err := h.rec.ReconcileTeam(r.Context(), id)
	if errors.Is(err, store.ErrTeamNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
		return
	}
	if err != nil {
		logging.Error(logger, "single-team reconciliation failed", err, slog.String(logging.FieldTeamID, id))
		writeError(w, r, nethttp.StatusBadGateway, "reconciliation failed: "+err.Error(), logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, delta, logger)
}

func (h *AdminHandler) authorize(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if h.token != "" && r.Header.Get("Authorization") == "Bearer "+h.token {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", r.RemoteAddr),
	)
	writeError(w, r, nethttp.StatusUnauthorized, "unauthorized", h.logger)
	return false
}
