package store

import (
	"context"
	"sort"
	"sync"

	"homerun-fantasy/internal/domain"
)

// MemoryStore keeps a thread-safe set of teams in memory. Used by tests and
// as an ephemeral backend for local development.
type MemoryStore struct {
	mu    sync.RWMutex
	teams map[string]domain.Team
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teams: make(map[string]domain.Team),
	}
}

// CreateTeam stores a new team record.
func (s *MemoryStore) CreateTeam(ctx context.Context, team domain.Team) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = copyTeam(team)
	return nil
}

// ListTeams returns all teams ordered by creation time.
func (s *MemoryStore) ListTeams(ctx context.Context) ([]domain.Team, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Team, 0, len(s.teams))
	for _, t := range s.teams {
		result = append(result, copyTeam(t))
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetTeam retrieves a team by id.
func (s *MemoryStore) GetTeam(ctx context.Context, id string) (domain.Team, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return domain.Team{}, ErrTeamNotFound
	}
	return copyTeam(t), nil
}

// CountTeamsByOwner returns how many teams an owner has created.
func (s *MemoryStore) CountTeamsByOwner(ctx context.Context, ownerID string) (int, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.teams {
		if t.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// UpdateTeamStats writes the reconciliation result for one team as a single
// update.
func (s *MemoryStore) UpdateTeamStats(ctx context.Context, id string, update domain.StatsUpdate) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[id]
	if !ok {
		return ErrTeamNotFound
	}
	t.PerPlayerHomeRuns = append([]int(nil), update.PerPlayerHomeRuns...)
	t.AggregateHomeRuns = update.AggregateHomeRuns
	t.LastUpdated = update.LastUpdated
	s.teams[id] = t
	return nil
}

// SetPaid toggles the manual payment flag.
func (s *MemoryStore) SetPaid(ctx context.Context, id string, paid bool) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[id]
	if !ok {
		return ErrTeamNotFound
	}
	t.Paid = paid
	s.teams[id] = t
	return nil
}

// DeleteTeam removes a team by id.
func (s *MemoryStore) DeleteTeam(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return ErrTeamNotFound
	}
	delete(s.teams, id)
	return nil
}

func copyTeam(t domain.Team) domain.Team {
	t.PerPlayerHomeRuns = append([]int(nil), t.PerPlayerHomeRuns...)
	return t
}
