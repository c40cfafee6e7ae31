package server

import (
	"log/slog"
	"os"
	"path/filepath"

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/store"
)

// buildStore selects the team store backend. A sqlite failure falls back to
// the in-memory store so the service still comes up; the error is logged
// loudly because teams created in that state do not survive a restart.
func buildStore(cfg config.StoreConfig, logger *slog.Logger) (store.TeamStore, func() error) {
	if cfg.Backend != config.StoreSQLite {
		return store.NewMemoryStore(), nil
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Error(logger, "store directory unavailable, using in-memory teams", err,
				slog.String("path", cfg.Path))
			return store.NewMemoryStore(), nil
		}
	}

	sqlite, err := store.OpenSQLite(cfg.Path, logger)
	if err != nil {
		logging.Error(logger, "sqlite store unavailable, using in-memory teams", err,
			slog.String("path", cfg.Path))
		return store.NewMemoryStore(), nil
	}
	return sqlite, sqlite.Close
}
