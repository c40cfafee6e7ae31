// Package leaderboard ranks teams by aggregate home runs.
package leaderboard

import (
	"sort"

	"homerun-fantasy/internal/domain"
)

// Rank orders teams by aggregate home runs descending and assigns modified
// competition ranks: tied teams share a rank, and the team after a tie group
// takes its positional rank (30, 30, 25 ranks as 1, 1, 3). The sort is stable,
// so teams with equal aggregates keep their input order; callers pass teams in
// creation order, which makes the tie-break deterministic. Teams that have
// never been reconciled rank with aggregate 0.
func Rank(teams []domain.Team) []domain.LeaderboardEntry {
	ordered := make([]domain.Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AggregateHomeRuns > ordered[j].AggregateHomeRuns
	})

	entries := make([]domain.LeaderboardEntry, len(ordered))
	for i, team := range ordered {
		rank := i + 1
		if i > 0 && team.AggregateHomeRuns == ordered[i-1].AggregateHomeRuns {
			rank = entries[i-1].Rank
		}
		entries[i] = domain.LeaderboardEntry{Rank: rank, Team: team}
	}
	return entries
}
