package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/metrics"
)

const (
	defaultRetryAttempts  = 3
	defaultInitialBackoff = 500 * time.Millisecond
)

// retryingProvider wraps a StatsProvider with bounded retry/backoff around
// the single upstream fetch. The per-team reconciliation loop is never
// retried, only this call.
type retryingProvider struct {
	inner       StatsProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner StatsProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) StatsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	if r.inner == nil {
		return domain.Snapshot{}, ErrProviderUnavailable
	}

	var snap domain.Snapshot
	attempt := 0

	operation := func() error {
		attempt++
		start := time.Now()
		fetched, err := r.inner.FetchLeaders(ctx, season)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err != nil {
			logger := logging.FromContext(ctx, r.logger)
			logging.Warn(logger, "provider fetch retry",
				slog.String(logging.FieldProvider, r.name),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", r.maxAttempts),
				slog.Any("err", err),
			)
			return err
		}
		snap = fetched
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.initial
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(r.maxAttempts-1)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		logger := logging.FromContext(ctx, r.logger)
		logging.Warn(logger, "provider fetch failed",
			slog.String(logging.FieldProvider, r.name),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
		return domain.Snapshot{}, err
	}
	return snap, nil
}
