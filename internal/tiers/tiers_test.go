package tiers

import (
	"fmt"
	"testing"

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/domain"
)

func makeLeaders(n int) []domain.Player {
	players := make([]domain.Player, n)
	for i := range players {
		players[i] = domain.Player{
			ID:       fmt.Sprintf("p%d", i+1),
			Name:     fmt.Sprintf("Player %d", i+1),
			HomeRuns: n - i,
		}
	}
	return players
}

func poolIDs(players []domain.Player) map[string]struct{} {
	ids := make(map[string]struct{}, len(players))
	for _, p := range players {
		ids[p.ID] = struct{}{}
	}
	return ids
}

func TestClassifySizes(t *testing.T) {
	policy := config.DefaultTierPolicy()

	tests := []struct {
		total                          int
		tier1, tier2, tier3, wildcards int
	}{
		// Percentage cuts dominate on a full leaderboard.
		{total: 100, tier1: 10, tier2: 15, tier3: 20, wildcards: 55},
		// Floor of 6 dominates on a short leaderboard.
		{total: 30, tier1: 6, tier2: 6, tier3: 6, wildcards: 12},
		// Fewer players than three full tiers degrade in order.
		{total: 14, tier1: 6, tier2: 6, tier3: 2, wildcards: 0},
		{total: 4, tier1: 4, tier2: 0, tier3: 0, wildcards: 0},
		{total: 0, tier1: 0, tier2: 0, tier3: 0, wildcards: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.total), func(t *testing.T) {
			set := Classify(makeLeaders(tt.total), nil, policy)
			if got := len(set.Tier1); got != tt.tier1 {
				t.Errorf("tier1: expected %d, got %d", tt.tier1, got)
			}
			if got := len(set.Tier2); got != tt.tier2 {
				t.Errorf("tier2: expected %d, got %d", tt.tier2, got)
			}
			if got := len(set.Tier3); got != tt.tier3 {
				t.Errorf("tier3: expected %d, got %d", tt.tier3, got)
			}
			if got := len(set.Wildcards); got != tt.wildcards {
				t.Errorf("wildcards: expected %d, got %d", tt.wildcards, got)
			}
		})
	}
}

func TestClassifyOrdering(t *testing.T) {
	set := Classify(makeLeaders(100), nil, config.DefaultTierPolicy())

	if set.Tier1[0].ID != "p1" || set.Tier1[len(set.Tier1)-1].ID != "p10" {
		t.Fatalf("tier1 boundaries wrong: %s..%s", set.Tier1[0].ID, set.Tier1[len(set.Tier1)-1].ID)
	}
	if set.Tier2[0].ID != "p11" {
		t.Fatalf("tier2 must start where tier1 ends, got %s", set.Tier2[0].ID)
	}
	if set.Tier3[0].ID != "p26" {
		t.Fatalf("tier3 must start where tier2 ends, got %s", set.Tier3[0].ID)
	}
	if set.Wildcards[0].ID != "p46" {
		t.Fatalf("wildcards must start where tier3 ends, got %s", set.Wildcards[0].ID)
	}
}

func TestClassifyPoolsDisjoint(t *testing.T) {
	// Duplicate entries in the input must not land a player in two pools.
	players := makeLeaders(40)
	players = append(players, players[0], players[20])

	set := Classify(players, nil, config.DefaultTierPolicy())

	seen := map[string]string{}
	for name, pool := range map[string][]domain.Player{
		"tier1": set.Tier1, "tier2": set.Tier2, "tier3": set.Tier3, "wildcards": set.Wildcards,
	} {
		for _, p := range pool {
			if prev, ok := seen[p.ID]; ok {
				t.Fatalf("player %s in both %s and %s", p.ID, prev, name)
			}
			seen[p.ID] = name
		}
	}
	if len(seen) != 40 {
		t.Fatalf("expected 40 distinct players, got %d", len(seen))
	}
}

func TestClassifyUnsortedInput(t *testing.T) {
	players := makeLeaders(30)
	// Reverse so the leader arrives last.
	for i, j := 0, len(players)-1; i < j; i, j = i+1, j-1 {
		players[i], players[j] = players[j], players[i]
	}

	set := Classify(players, nil, config.DefaultTierPolicy())
	if set.Tier1[0].ID != "p1" {
		t.Fatalf("expected the home-run leader in tier1, got %s", set.Tier1[0].ID)
	}
}

func TestClassifyExtraActivePlayers(t *testing.T) {
	extras := []domain.Player{
		{ID: "x1", Name: "Callup One"},
		{ID: "p1", Name: "Already Tier1"},  // claimed by tier1
		{ID: "p25", Name: "Already Wild"},  // claimed by leftover wildcards
		{ID: "x1", Name: "Callup One Dup"}, // duplicate extra
		{ID: "x2", Name: "Callup Two"},
	}

	set := Classify(makeLeaders(20), extras, config.DefaultTierPolicy())

	wild := poolIDs(set.Wildcards)
	if _, ok := wild["x1"]; !ok {
		t.Fatal("expected extra active player x1 in the wildcard pool")
	}
	if _, ok := wild["x2"]; !ok {
		t.Fatal("expected extra active player x2 in the wildcard pool")
	}
	// 20 leaders: 6+6+6 in tiers, 2 leftover, plus the two genuine extras.
	if len(set.Wildcards) != 4 {
		t.Fatalf("expected 4 wildcard players, got %d", len(set.Wildcards))
	}
	if _, ok := poolIDs(set.Tier1)["p1"]; !ok {
		t.Fatal("p1 must stay in tier1")
	}
}
