package fixture

import (
	"context"
	"time"

	"homerun-fantasy/internal/domain"
)

// Provider returns a static leaderboard useful for local development and
// bootstrapping. It is only reachable via explicit configuration
// (PROVIDER=fixture); reconciliation never falls back to it.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchLeaders returns a deterministic set of example sluggers, large enough
// to fill all three tiers plus a wildcard pool.
func (p *Provider) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	_ = ctx

	players := []domain.Player{
		{ID: "p592450", Name: "Aaron Judge", Team: "NYY", HomeRuns: 38, Position: "RF"},
		{ID: "p663728", Name: "Cal Raleigh", Team: "SEA", HomeRuns: 36, Position: "C"},
		{ID: "p660271", Name: "Shohei Ohtani", Team: "LAD", HomeRuns: 35, Position: "DH"},
		{ID: "p656941", Name: "Kyle Schwarber", Team: "PHI", HomeRuns: 33, Position: "DH"},
		{ID: "p624413", Name: "Pete Alonso", Team: "NYM", HomeRuns: 28, Position: "1B"},
		{ID: "p665742", Name: "Juan Soto", Team: "NYM", HomeRuns: 27, Position: "RF"},
		{ID: "p665489", Name: "Vladimir Guerrero Jr.", Team: "TOR", HomeRuns: 25, Position: "1B"},
		{ID: "p670541", Name: "Yordan Alvarez", Team: "HOU", HomeRuns: 24, Position: "DH"},
		{ID: "p606192", Name: "Teoscar Hernandez", Team: "LAD", HomeRuns: 24, Position: "RF"},
		{ID: "p621566", Name: "Matt Olson", Team: "ATL", HomeRuns: 23, Position: "1B"},
		{ID: "p592518", Name: "Manny Machado", Team: "SD", HomeRuns: 22, Position: "3B"},
		{ID: "p521692", Name: "Salvador Perez", Team: "KC", HomeRuns: 21, Position: "C"},
		{ID: "p700022", Name: "Elly De La Cruz", Team: "CIN", HomeRuns: 20, Position: "SS"},
		{ID: "p682998", Name: "Corbin Carroll", Team: "AZ", HomeRuns: 20, Position: "CF"},
		{ID: "p673357", Name: "Luis Robert Jr.", Team: "CWS", HomeRuns: 19, Position: "CF"},
		{ID: "p666969", Name: "Adley Rutschman", Team: "BAL", HomeRuns: 18, Position: "C"},
		{ID: "p677951", Name: "Bobby Witt Jr.", Team: "KC", HomeRuns: 17, Position: "SS"},
		{ID: "p605141", Name: "Mookie Betts", Team: "LAD", HomeRuns: 16, Position: "SS"},
		{ID: "p646240", Name: "Willy Adames", Team: "SF", HomeRuns: 15, Position: "SS"},
		{ID: "p663586", Name: "Austin Riley", Team: "ATL", HomeRuns: 14, Position: "3B"},
		{ID: "p668939", Name: "Adolis Garcia", Team: "TEX", HomeRuns: 13, Position: "RF"},
		{ID: "p676701", Name: "Riley Greene", Team: "DET", HomeRuns: 12, Position: "LF"},
		{ID: "p665487", Name: "Fernando Tatis Jr.", Team: "SD", HomeRuns: 11, Position: "RF"},
		{ID: "p650490", Name: "Jazz Chisholm Jr.", Team: "NYY", HomeRuns: 10, Position: "3B"},
	}

	return domain.Snapshot{
		Season:    season,
		Players:   players,
		FetchedAt: p.now().UTC(),
		Source:    domain.SourceLive,
	}, nil
}
