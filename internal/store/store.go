package store

import (
	"context"
	"errors"

	"homerun-fantasy/internal/domain"
)

// ErrTeamNotFound is returned when a team id has no record.
var ErrTeamNotFound = errors.New("team not found")

// TeamStore defines the contract for persisting and retrieving teams.
// ListTeams returns teams in creation order; the leaderboard relies on that
// order as its deterministic tie-break.
type TeamStore interface {
	CreateTeam(ctx context.Context, team domain.Team) error
	ListTeams(ctx context.Context) ([]domain.Team, error)
	GetTeam(ctx context.Context, id string) (domain.Team, error)
	CountTeamsByOwner(ctx context.Context, ownerID string) (int, error)
	// UpdateTeamStats persists per-player home runs, the aggregate, and the
	// update timestamp in a single write.
	UpdateTeamStats(ctx context.Context, id string, update domain.StatsUpdate) error
	SetPaid(ctx context.Context, id string, paid bool) error
	DeleteTeam(ctx context.Context, id string) error
}
