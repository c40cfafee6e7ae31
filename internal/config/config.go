package config

// Config holds runtime configuration for the server.
type Config struct {
	Port              string
	Provider          string
	Season            int
	ReconcileInterval Duration
	AdminToken        string
	MLB               MLBConfig
	Cache             CacheConfig
	Tiers             TierPolicy
	Store             StoreConfig
	Metrics           MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:              envOrDefault(envPort, defaultPort),
		Provider:          envOrDefault(envProvider, defaultProvider),
		Season:            intEnvOrDefault(envSeason, defaultSeason()),
		ReconcileInterval: durationEnvOrDefault(envReconcileInterval, defaultReconcileInterval),
		AdminToken:        envOrDefault(envAdminToken, ""),
		MLB:               loadMLB(),
		Cache:             loadCache(),
		Tiers:             DefaultTierPolicy(),
		Store:             loadStore(),
		Metrics:           loadMetrics(),
	}
}
