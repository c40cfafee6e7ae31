package domain

import "time"

// SnapshotSource identifies where a stats snapshot came from.
type SnapshotSource string

const (
	SourceLive  SnapshotSource = "live"
	SourceCache SnapshotSource = "cache"
	SourceDisk  SnapshotSource = "disk"
)

// Player is the normalized shape of one home-run leader, immutable at fetch time.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	HomeRuns int    `json:"homeRuns"`
	Position string `json:"position"`
}

// Snapshot is a full set of season home-run leaders plus provenance.
// Stale snapshots are real data served past the freshness window; they are
// always labeled, never passed off as fresh.
type Snapshot struct {
	Season    int            `json:"season"`
	Players   []Player       `json:"players"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Source    SnapshotSource `json:"source"`
	Stale     bool           `json:"stale"`
}

// Index returns a lookup of players by id.
func (s Snapshot) Index() map[string]Player {
	idx := make(map[string]Player, len(s.Players))
	for _, p := range s.Players {
		idx[p.ID] = p
	}
	return idx
}

// Team is a user's entry: a name, six roster slots, and derived stats.
type Team struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OwnerID           string    `json:"ownerId"`
	Paid              bool      `json:"paid"`
	Roster            Roster    `json:"roster"`
	PerPlayerHomeRuns []int     `json:"perPlayerHomeRuns"`
	AggregateHomeRuns int       `json:"aggregateHomeRuns"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// StatsUpdate carries the fields a reconciliation writes for one team.
// The store must persist all three in a single write.
type StatsUpdate struct {
	PerPlayerHomeRuns []int
	AggregateHomeRuns int
	LastUpdated       time.Time
}

// TeamDelta reports the aggregate change for one team after a reconciliation.
type TeamDelta struct {
	TeamID            string `json:"teamId"`
	TeamName          string `json:"teamName"`
	PreviousAggregate int    `json:"previousAggregate"`
	NewAggregate      int    `json:"newAggregate"`
	PerPlayerHomeRuns []int  `json:"perPlayerHomeRuns"`
}

// ReconcileReport summarizes one reconciliation run for operator visibility.
type ReconcileReport struct {
	Season           int            `json:"season"`
	UpdatedTeamCount int            `json:"updatedTeamCount"`
	FailedTeamIDs    []string       `json:"failedTeamIds,omitempty"`
	Deltas           []TeamDelta    `json:"perTeamDeltas"`
	SnapshotSource   SnapshotSource `json:"snapshotSource"`
	SnapshotStale    bool           `json:"snapshotStale"`
	SnapshotAt       time.Time      `json:"snapshotAt"`
	GeneratedAt      time.Time      `json:"generatedAt"`
}

// LeaderboardEntry is a team annotated with its computed rank.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	Team
}

// SnapshotInfo is the provenance of the snapshot behind a response.
type SnapshotInfo struct {
	Source    SnapshotSource `json:"source"`
	Stale     bool           `json:"stale"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// LeaderboardResponse is the payload returned by /leaderboard. Snapshot is
// nil when the stats provider was unreachable; the rankings still serve from
// stored team data.
type LeaderboardResponse struct {
	Season      int                `json:"season"`
	Teams       []LeaderboardEntry `json:"teams"`
	LastUpdated time.Time          `json:"lastUpdated"`
	Snapshot    *SnapshotInfo      `json:"snapshot,omitempty"`
}

// PlayersResponse is the payload returned by /players: the draft pools.
type PlayersResponse struct {
	Season   int          `json:"season"`
	Snapshot SnapshotInfo `json:"snapshot"`
	TierSet
}

// TierSet is the draft-time partition of the player universe.
type TierSet struct {
	Tier1     []Player `json:"tier1Players"`
	Tier2     []Player `json:"tier2Players"`
	Tier3     []Player `json:"tier3Players"`
	Wildcards []Player `json:"wildcardPlayers"`
}
