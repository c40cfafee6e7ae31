// Package testutil holds hand-rolled stubs shared by tests across packages.
package testutil

import (
	"context"
	"errors"
	"sync"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/store"
)

// StubProvider returns a fixed snapshot or error and counts calls.
type StubProvider struct {
	mu       sync.Mutex
	Snapshot domain.Snapshot
	Err      error
	calls    int
}

func (p *StubProvider) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	_ = ctx
	_ = season
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.Err != nil {
		return domain.Snapshot{}, p.Err
	}
	return p.Snapshot, nil
}

// Calls reports how many times FetchLeaders ran.
func (p *StubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// SequenceProvider replays results in order, repeating the last one.
type SequenceProvider struct {
	mu      sync.Mutex
	Results []ProviderResult
	calls   int
}

type ProviderResult struct {
	Snapshot domain.Snapshot
	Err      error
}

func (p *SequenceProvider) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	_ = ctx
	_ = season
	p.mu.Lock()
	i := p.calls
	p.calls++
	p.mu.Unlock()
	if len(p.Results) == 0 {
		return domain.Snapshot{}, errors.New("sequence provider has no results")
	}
	if i >= len(p.Results) {
		i = len(p.Results) - 1
	}
	res := p.Results[i]
	return res.Snapshot, res.Err
}

func (p *SequenceProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// FailingStore wraps a TeamStore and fails UpdateTeamStats for chosen teams.
type FailingStore struct {
	store.TeamStore
	FailUpdates map[string]error
}

func (s *FailingStore) UpdateTeamStats(ctx context.Context, id string, update domain.StatsUpdate) error {
	if err, ok := s.FailUpdates[id]; ok {
		return err
	}
	return s.TeamStore.UpdateTeamStats(ctx, id, update)
}

// Roster builds a complete six-slot roster from player ids in slot order.
func Roster(ids [6]string) domain.Roster {
	return domain.Roster{
		Tier1:     domain.Player{ID: ids[0]},
		Tier2:     domain.Player{ID: ids[1]},
		Tier3:     domain.Player{ID: ids[2]},
		Wildcard1: domain.Player{ID: ids[3]},
		Wildcard2: domain.Player{ID: ids[4]},
		Wildcard3: domain.Player{ID: ids[5]},
	}
}
