// Package tiers splits a home-run leaderboard into draft tiers. Tier sizes
// are percentage cuts of the leaderboard with a floor, so short early-season
// leaderboards still produce usable tiers.
package tiers

import (
	"math"
	"sort"

	"homerun-fantasy/internal/config"
	"homerun-fantasy/internal/domain"
)

// Classify assigns leaderboard players to tiers. The input is re-sorted by
// home runs descending since tier membership depends on position. The
// wildcard pool holds every leaderboard player not claimed by the top three
// tiers, unioned with extraActive (active-roster players outside the
// leaderboard); a player never appears in more than one pool.
func Classify(players []domain.Player, extraActive []domain.Player, policy config.TierPolicy) domain.TierSet {
	ordered := dedupe(players, nil)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].HomeRuns > ordered[j].HomeRuns
	})

	n := len(ordered)
	t1 := tierSize(policy.Tier1Pct, n, policy.MinTierSize)
	t2 := tierSize(policy.Tier2Pct, n, policy.MinTierSize)
	t3 := tierSize(policy.Tier3Pct, n, policy.MinTierSize)

	var set domain.TierSet
	set.Tier1, ordered = take(ordered, t1)
	set.Tier2, ordered = take(ordered, t2)
	set.Tier3, ordered = take(ordered, t3)

	claimed := make(map[string]struct{}, n)
	for _, pool := range [][]domain.Player{set.Tier1, set.Tier2, set.Tier3, ordered} {
		for _, p := range pool {
			claimed[p.ID] = struct{}{}
		}
	}
	set.Wildcards = append(ordered, dedupe(extraActive, claimed)...)
	return set
}

// tierSize is a percentage cut of the leaderboard, never smaller than the
// configured floor.
func tierSize(pct float64, total, minSize int) int {
	size := int(math.Ceil(pct * float64(total)))
	if size < minSize {
		size = minSize
	}
	return size
}

func take(players []domain.Player, n int) ([]domain.Player, []domain.Player) {
	if n > len(players) {
		n = len(players)
	}
	return players[:n], players[n:]
}

// dedupe drops players with empty or repeated ids, and any id already present
// in skip.
func dedupe(players []domain.Player, skip map[string]struct{}) []domain.Player {
	seen := make(map[string]struct{}, len(players))
	result := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		if _, ok := skip[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result
}
