package config

import "time"

// CacheConfig controls the stats cache in front of the upstream fetch.
type CacheConfig struct {
	TTL         time.Duration
	SnapshotDir string
}

func loadCache() CacheConfig {
	return CacheConfig{
		TTL:         durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		SnapshotDir: envOrDefault(envSnapshotDir, defaultSnapshotDir),
	}
}
