package mlbstats

import "time"

const (
	providerName = "mlb"

	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultTimeout     = 15 * time.Second
	defaultLeaderLimit = 500

	userAgent = "Homerun-Fantasy-App/1.0"

	leaderCategory = "homeRuns"
	sportID        = "1"
)
