package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/metrics"
)

const cacheProviderName = "stats-cache"

// SnapshotStore persists the last good snapshot per season so a restarted
// process can still serve labeled-stale data.
type SnapshotStore interface {
	LoadLeaders(season int) (domain.Snapshot, error)
	SaveLeaders(snap domain.Snapshot) error
}

// CachedProvider serves snapshots from memory while they are inside the
// freshness window, refreshes from the inner provider when they are not, and
// falls back to the last good snapshot (labeled stale) when the refresh
// fails. It never fabricates data: every fallback is a previously fetched
// upstream snapshot.
type CachedProvider struct {
	inner   StatsProvider
	store   SnapshotStore
	clock   clockwork.Clock
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu     sync.Mutex
	cached map[int]domain.Snapshot
}

// NewCachedProvider wraps inner with a TTL cache. The clock is injected so
// tests control time; store may be nil to disable disk persistence.
func NewCachedProvider(inner StatsProvider, store SnapshotStore, clock clockwork.Clock, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *CachedProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CachedProvider{
		inner:   inner,
		store:   store,
		clock:   clock,
		ttl:     ttl,
		logger:  logger,
		metrics: recorder,
		cached:  make(map[int]domain.Snapshot),
	}
}

// FetchLeaders returns a fresh snapshot when possible. The returned
// snapshot's Source and Stale fields always reflect where it came from.
func (c *CachedProvider) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	if c.inner == nil {
		return domain.Snapshot{}, ErrProviderUnavailable
	}

	now := c.clock.Now().UTC()

	if snap, ok := c.memory(season); ok && c.fresh(snap, now) {
		snap.Source = domain.SourceCache
		snap.Stale = false
		return snap, nil
	}

	if c.store != nil {
		if _, ok := c.memory(season); !ok {
			if snap, err := c.store.LoadLeaders(season); err == nil && c.fresh(snap, now) {
				snap.Source = domain.SourceDisk
				snap.Stale = false
				c.remember(season, snap)
				return snap, nil
			}
		}
	}

	snap, err := c.inner.FetchLeaders(ctx, season)
	if err == nil {
		if snap.FetchedAt.IsZero() {
			snap.FetchedAt = now
		}
		snap.Source = domain.SourceLive
		snap.Stale = false
		c.remember(season, snap)
		c.persist(ctx, snap)
		return snap, nil
	}

	logger := logging.FromContext(ctx, c.logger)

	if stale, ok := c.lastGood(season); ok {
		stale.Stale = true
		c.metrics.RecordStaleServe(cacheProviderName)
		logging.Warn(logger, "serving stale stats snapshot",
			slog.Int(logging.FieldSeason, season),
			slog.Time("fetched_at", stale.FetchedAt),
			slog.Any("err", err),
		)
		return stale, nil
	}

	return domain.Snapshot{}, err
}

func (c *CachedProvider) fresh(snap domain.Snapshot, now time.Time) bool {
	if snap.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(snap.FetchedAt) < c.ttl
}

func (c *CachedProvider) memory(season int) (domain.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.cached[season]
	return snap, ok
}

func (c *CachedProvider) remember(season int, snap domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached[season] = snap
}

// lastGood returns the most recent real snapshot from memory or disk,
// regardless of freshness.
func (c *CachedProvider) lastGood(season int) (domain.Snapshot, bool) {
	if snap, ok := c.memory(season); ok {
		snap.Source = domain.SourceCache
		return snap, true
	}
	if c.store != nil {
		if snap, err := c.store.LoadLeaders(season); err == nil && len(snap.Players) > 0 {
			snap.Source = domain.SourceDisk
			return snap, true
		}
	}
	return domain.Snapshot{}, false
}

func (c *CachedProvider) persist(ctx context.Context, snap domain.Snapshot) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveLeaders(snap); err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "snapshot persist failed",
			slog.Int(logging.FieldSeason, snap.Season),
			slog.Any("err", err),
		)
	}
}
