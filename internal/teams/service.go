// Package teams handles draft-time team creation and validation.
package teams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/providers"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
)

// MaxTeamsPerOwner caps how many entries one owner can create.
const MaxTeamsPerOwner = 3

var (
	ErrMissingName      = errors.New("team name is required")
	ErrMissingOwner     = errors.New("owner id is required")
	ErrIncompleteRoster = errors.New("all six roster slots must be filled")
	ErrDuplicatePlayer  = errors.New("a player can only fill one roster slot")
	ErrTeamLimitReached = fmt.Errorf("an owner can have at most %d teams", MaxTeamsPerOwner)
)

// CreateInput is the draft submission for a new team.
type CreateInput struct {
	Name    string        `json:"name"`
	OwnerID string        `json:"ownerId"`
	Roster  domain.Roster `json:"roster"`
}

// Service validates and creates teams. New teams get their initial stats from
// the current snapshot so they appear on the leaderboard immediately instead
// of waiting for the next reconciliation.
type Service struct {
	store    store.TeamStore
	provider providers.StatsProvider
	logger   *slog.Logger
	clock    clockwork.Clock
	season   int
	newID    func() string
}

// NewService constructs a Service.
func NewService(teamStore store.TeamStore, provider providers.StatsProvider, logger *slog.Logger, clock clockwork.Clock, season int) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		store:    teamStore,
		provider: provider,
		logger:   logger,
		clock:    clock,
		season:   season,
		newID:    uuid.NewString,
	}
}

// Create validates the submission and stores the new team.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Team, error) {
	if err := validate(input); err != nil {
		return domain.Team{}, err
	}

	count, err := s.store.CountTeamsByOwner(ctx, input.OwnerID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("count teams for owner: %w", err)
	}
	if count >= MaxTeamsPerOwner {
		return domain.Team{}, ErrTeamLimitReached
	}

	now := s.clock.Now().UTC()
	team := domain.Team{
		ID:                s.newID(),
		Name:              strings.TrimSpace(input.Name),
		OwnerID:           input.OwnerID,
		Roster:            input.Roster,
		PerPlayerHomeRuns: make([]int, domain.NumRosterSlots),
		CreatedAt:         now,
		LastUpdated:       now,
	}

	// Seed stats from the current snapshot when one is available; a provider
	// outage must not block team creation, the next reconciliation catches up.
	if snapshot, err := s.provider.FetchLeaders(ctx, s.season); err == nil {
		team.PerPlayerHomeRuns, team.AggregateHomeRuns = reconcile.ComputeStats(team.Roster, snapshot)
	} else {
		logging.Warn(s.logger, "team created without initial stats",
			slog.String(logging.FieldTeamID, team.ID), "error", err)
	}

	if err := s.store.CreateTeam(ctx, team); err != nil {
		return domain.Team{}, fmt.Errorf("store team: %w", err)
	}

	logging.Info(s.logger, "team created",
		slog.String(logging.FieldTeamID, team.ID),
		slog.String("owner_id", team.OwnerID),
		slog.Int("aggregate_home_runs", team.AggregateHomeRuns),
	)
	return team, nil
}

func validate(input CreateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return ErrMissingOwner
	}
	if !input.Roster.Complete() {
		return ErrIncompleteRoster
	}
	if input.Roster.DuplicateAnySlot() {
		return ErrDuplicatePlayer
	}
	return nil
}

// IsValidationError reports whether an error should map to a 4xx response.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingOwner) ||
		errors.Is(err, ErrIncompleteRoster) ||
		errors.Is(err, ErrDuplicatePlayer) ||
		errors.Is(err, ErrTeamLimitReached)
}
