package mlbstats

import (
	"fmt"

	"homerun-fantasy/internal/domain"
)

// mapLeader normalizes one upstream leader entry. Player ids carry a "p"
// prefix so they stay opaque strings on our side of the boundary.
func mapLeader(l leaderResponse) domain.Player {
	return domain.Player{
		ID:       fmt.Sprintf("p%d", l.Person.ID),
		Name:     l.Person.FullName,
		Team:     mapTeam(l.Team),
		HomeRuns: int(l.Value),
		Position: mapPosition(l.Position),
	}
}

func mapTeam(t teamResponse) string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	if t.Name != "" {
		return t.Name
	}
	return "Unknown"
}

func mapPosition(p positionResponse) string {
	if p.Abbreviation != "" {
		return p.Abbreviation
	}
	return "Unknown"
}
