package server

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/metrics"
	"homerun-fantasy/internal/providers"
	"homerun-fantasy/internal/providers/fixture"
	"homerun-fantasy/internal/providers/mlbstats"
	"homerun-fantasy/internal/snapshots"
)

// Provider backends selectable via PROVIDER.
const (
	providerMLB     = "mlb"
	providerFixture = "fixture"
)

// providerFactory assembles the stats provider with shared wrappers
// (retry, then TTL cache with disk-backed stale fallback).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	clock   clockwork.Clock
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, clock clockwork.Clock) providerFactory {
	return providerFactory{logger: logger, metrics: recorder, clock: clock}
}

func (f providerFactory) build(cfg config.Config) providers.StatsProvider {
	base, name := f.selectProvider(cfg)
	retried := providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0)

	var store providers.SnapshotStore
	if cfg.Cache.SnapshotDir != "" {
		store = snapshots.NewFSStore(cfg.Cache.SnapshotDir)
	}
	return providers.NewCachedProvider(retried, store, f.clock, cfg.Cache.TTL, f.logger, f.metrics)
}

// selectProvider picks the upstream backend. The fixture provider is only
// reachable through explicit configuration.
func (f providerFactory) selectProvider(cfg config.Config) (providers.StatsProvider, string) {
	if cfg.Provider == providerFixture {
		return fixture.New(), providerFixture
	}
	return mlbstats.NewClient(mlbstats.Config{
		BaseURL:     cfg.MLB.BaseURL,
		Timeout:     cfg.MLB.Timeout,
		LeaderLimit: cfg.MLB.LeaderLimit,
	}), providerMLB
}
