package config

// Tier sizing policy. Sizes are max(MinTierSize, ceil(pct*N)) over a
// leaderboard of N players; tiers grow with the pool rather than capping.
const (
	Tier1Percent = 0.10
	Tier2Percent = 0.15
	Tier3Percent = 0.20

	MinTierSize = 6
)

// TierPolicy names the classifier cutoffs so they live in one place.
type TierPolicy struct {
	Tier1Pct    float64
	Tier2Pct    float64
	Tier3Pct    float64
	MinTierSize int
}

// DefaultTierPolicy returns the production tier cutoffs.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{
		Tier1Pct:    Tier1Percent,
		Tier2Pct:    Tier2Percent,
		Tier3Pct:    Tier3Percent,
		MinTierSize: MinTierSize,
	}
}
