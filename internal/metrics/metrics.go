package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	staleServes     int
	lastCallLatency time.Duration
}

type reconcileStats struct {
	runs         int
	errors       int
	teamsUpdated int
	teamsFailed  int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// reconciliation runs. It is intentionally simple so it can be swapped for a
// real backend later.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	reconcile reconcileStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordStaleServe tracks that a provider served data past its freshness window.
func (r *Recorder) RecordStaleServe(provider string) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.staleServes++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStaleServe(provider)
	}
}

// RecordReconcileRun tracks one reconciliation run.
func (r *Recorder) RecordReconcileRun(duration time.Duration, updated, failed int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.reconcile.runs++
	r.reconcile.lastDuration = duration
	r.reconcile.teamsUpdated += updated
	r.reconcile.teamsFailed += failed
	if err != nil {
		r.reconcile.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordReconcile(duration, updated, failed, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderSnapshot is a copy of the current stats for one provider.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	StaleServes     int
	LastCallLatency time.Duration
}

func (r *Recorder) Provider(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[provider]; ok && stats != nil {
		return ProviderSnapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			StaleServes:     stats.staleServes,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return ProviderSnapshot{}
}

// ReconcileSnapshot is a copy of the reconciliation counters.
type ReconcileSnapshot struct {
	Runs         int
	Errors       int
	TeamsUpdated int
	TeamsFailed  int
	LastDuration time.Duration
}

func (r *Recorder) Reconcile() ReconcileSnapshot {
	if r == nil {
		return ReconcileSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReconcileSnapshot{
		Runs:         r.reconcile.runs,
		Errors:       r.reconcile.errors,
		TeamsUpdated: r.reconcile.teamsUpdated,
		TeamsFailed:  r.reconcile.teamsFailed,
		LastDuration: r.reconcile.lastDuration,
	}
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
