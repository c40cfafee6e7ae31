package providers

import (
	"context"

	"homerun-fantasy/internal/domain"
)

// StatsProvider defines how upstream home-run totals are fetched and
// normalized. Implementations return a full leaderboard snapshot for the
// season; partial results are treated as errors, never silently truncated.
type StatsProvider interface {
	FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error)
}
