package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler, admin *AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/leaderboard", handler.Leaderboard)
	mux.HandleFunc("/players", handler.Players)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.TeamByID)
	if admin != nil {
		mux.HandleFunc("/admin/reconcile", admin.Reconcile)
		mux.HandleFunc("/admin/teams/", admin.TeamActions)
	}
	return mux
}
