package config

import "time"

const (
	envPort              = "PORT"
	envProvider          = "PROVIDER"
	envSeason            = "SEASON"
	envReconcileInterval = "RECONCILE_INTERVAL"
	envAdminToken        = "ADMIN_TOKEN"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envCacheTTL          = "STATS_CACHE_TTL"
	envSnapshotDir       = "SNAPSHOT_DIR"
	envStoreBackend      = "STORE_BACKEND"
	envStorePath         = "STORE_PATH"

	defaultPort     = "4000"
	defaultProvider = "mlb"
	// Conservative default cadence; home-run totals move a handful of times a day.
	defaultReconcileInterval = 1 * Duration(time.Hour)
	defaultMetricsPort       = "9090"
	// Freshness window for the stats cache before a live refetch.
	defaultCacheTTL    = 12 * Duration(time.Hour)
	defaultSnapshotDir = "data/snapshots"
)

func defaultSeason() int {
	return time.Now().UTC().Year()
}
