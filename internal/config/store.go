package config

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

const defaultStorePath = "data/teams.db"

// StoreConfig selects and configures the team store backend.
type StoreConfig struct {
	Backend string
	Path    string
}

func loadStore() StoreConfig {
	return StoreConfig{
		Backend: envOrDefault(envStoreBackend, StoreSQLite),
		Path:    envOrDefault(envStorePath, defaultStorePath),
	}
}
