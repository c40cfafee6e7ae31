// Package reconcile recomputes team home-run totals against a leaderboard
// snapshot and keeps them current on an interval.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/metrics"
	"homerun-fantasy/internal/providers"
	"homerun-fantasy/internal/store"
)

// Reconciler recomputes every team's per-player and aggregate home runs from
// one leaderboard snapshot. A failed fetch fails the whole run before any
// team is written; a failed team write never blocks the remaining teams.
type Reconciler struct {
	provider providers.StatsProvider
	store    store.TeamStore
	logger   *slog.Logger
	metrics  *metrics.Recorder
	clock    clockwork.Clock
	season   int
}

// New constructs a Reconciler for one season.
func New(provider providers.StatsProvider, teamStore store.TeamStore, logger *slog.Logger, recorder *metrics.Recorder, clock clockwork.Clock, season int) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reconciler{
		provider: provider,
		store:    teamStore,
		logger:   logger,
		metrics:  recorder,
		clock:    clock,
		season:   season,
	}
}

// ComputeStats derives a team's stats from a snapshot. Each of the six slots
// is looked up by exact player id; players absent from the snapshot count as
// zero. The same roster and snapshot always produce the same result.
func ComputeStats(roster domain.Roster, snapshot domain.Snapshot) ([]int, int) {
	index := snapshot.Index()
	perPlayer := make([]int, domain.NumRosterSlots)
	total := 0
	for i, id := range roster.PlayerIDs() {
		if player, ok := index[id]; ok {
			perPlayer[i] = player.HomeRuns
		}
		total += perPlayer[i]
	}
	return perPlayer, total
}

// Run fetches the current snapshot and reconciles every team against it.
// When the fetch fails no team is touched and the error is returned as-is so
// callers can surface the provider failure.
func (r *Reconciler) Run(ctx context.Context) (domain.ReconcileReport, error) {
	start := r.clock.Now()

	snapshot, err := r.provider.FetchLeaders(ctx, r.season)
	if err != nil {
		r.metrics.RecordReconcileRun(r.clock.Since(start), 0, 0, err)
		logging.Error(r.logger, "reconciliation aborted, snapshot fetch failed", err,
			slog.Int(logging.FieldSeason, r.season))
		return domain.ReconcileReport{}, fmt.Errorf("fetch leaders for season %d: %w", r.season, err)
	}

	teams, err := r.store.ListTeams(ctx)
	if err != nil {
		r.metrics.RecordReconcileRun(r.clock.Since(start), 0, 0, err)
		return domain.ReconcileReport{}, fmt.Errorf("list teams: %w", err)
	}

	report := domain.ReconcileReport{
		Season:         r.season,
		Deltas:         make([]domain.TeamDelta, 0, len(teams)),
		SnapshotSource: snapshot.Source,
		SnapshotStale:  snapshot.Stale,
		SnapshotAt:     snapshot.FetchedAt,
	}

	for _, team := range teams {
		delta, err := r.reconcileTeam(ctx, team, snapshot)
		if err != nil {
			report.FailedTeamIDs = append(report.FailedTeamIDs, team.ID)
			logging.Error(r.logger, "team reconciliation failed", err,
				slog.String(logging.FieldTeamID, team.ID))
			continue
		}
		report.UpdatedTeamCount++
		report.Deltas = append(report.Deltas, delta)
	}

	report.GeneratedAt = r.clock.Now().UTC()
	r.metrics.RecordReconcileRun(r.clock.Since(start), report.UpdatedTeamCount, len(report.FailedTeamIDs), nil)
	logging.Info(r.logger, "reconciliation complete",
		slog.Int(logging.FieldSeason, r.season),
		slog.Int("teams_updated", report.UpdatedTeamCount),
		slog.Int("teams_failed", len(report.FailedTeamIDs)),
		slog.Bool("snapshot_stale", snapshot.Stale),
		slog.Int64(logging.FieldDurationMS, r.clock.Since(start).Milliseconds()),
	)
	return report, nil
}

// ReconcileTeam recomputes a single team by id, for the admin surface.
func (r *Reconciler) ReconcileTeam(ctx context.Context, teamID string) (domain.TeamDelta, error) {
	snapshot, err := r.provider.FetchLeaders(ctx, r.season)
	if err != nil {
		return domain.TeamDelta{}, fmt.Errorf("fetch leaders for season %d: %w", r.season, err)
	}
	team, err := r.store.GetTeam(ctx, teamID)
	if err != nil {
		return domain.TeamDelta{}, err
	}
	return r.reconcileTeam(ctx, team, snapshot)
}

func (r *Reconciler) reconcileTeam(ctx context.Context, team domain.Team, snapshot domain.Snapshot) (domain.TeamDelta, error) {
	perPlayer, total := ComputeStats(team.Roster, snapshot)

	update := domain.StatsUpdate{
		PerPlayerHomeRuns: perPlayer,
		AggregateHomeRuns: total,
		LastUpdated:       r.clock.Now().UTC(),
	}
	if err := r.store.UpdateTeamStats(ctx, team.ID, update); err != nil {
		return domain.TeamDelta{}, fmt.Errorf("persist stats for team %s: %w", team.ID, err)
	}

	return domain.TeamDelta{
		TeamID:            team.ID,
		TeamName:          team.Name,
		PreviousAggregate: team.AggregateHomeRuns,
		NewAggregate:      total,
		PerPlayerHomeRuns: perPlayer,
	}, nil
}
