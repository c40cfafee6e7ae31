package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
)

const defaultInterval = time.Hour

// Runner drives reconciliation on an interval, with a warm-up run on start.
type Runner struct {
	reconciler *Reconciler
	logger     *slog.Logger
	clock      clockwork.Clock
	interval   time.Duration

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the reconciliation loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// NewRunner constructs a Runner with sane defaults.
func NewRunner(reconciler *Reconciler, logger *slog.Logger, clock clockwork.Clock, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = defaultInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{
		reconciler: reconciler,
		logger:     logger,
		clock:      clock,
		interval:   interval,
		done:       make(chan struct{}),
	}
}

// Start begins the loop until the context is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	ticker := r.clock.NewTicker(r.interval)

	go func() {
		defer ticker.Stop()
		logging.Info(r.logger, "reconcile runner started",
			slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		// Warm-up run so the leaderboard has data right after boot.
		r.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(r.logger, "reconcile runner stopped")
				return
			case <-r.done:
				logging.Info(r.logger, "reconcile runner stopped")
				return
			case <-ticker.Chan():
				r.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop.
func (r *Runner) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
	})
	return nil
}

// RunNow triggers one reconciliation outside the interval, for the admin
// surface. It shares the Runner's health status.
func (r *Runner) RunNow(ctx context.Context) (domain.ReconcileReport, error) {
	return r.runOnce(ctx)
}

func (r *Runner) runOnce(ctx context.Context) (domain.ReconcileReport, error) {
	start := r.clock.Now()
	r.recordAttempt(start)

	report, err := r.reconciler.Run(ctx)
	if err != nil {
		r.recordFailure(err, start)
		return domain.ReconcileReport{}, err
	}
	r.recordSuccess(r.clock.Now())
	return report, nil
}

func (r *Runner) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Runner) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Runner) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (r *Runner) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
