package config

import "time"

const (
	envMLBBaseURL = "MLB_BASE_URL"
	envMLBTimeout = "MLB_TIMEOUT"
	envMLBLimit   = "MLB_LEADER_LIMIT"

	defaultMLBBaseURL = "https://statsapi.mlb.com/api/v1"
	defaultMLBTimeout = 15 * time.Second
	// Deep leaderboard so wildcard-pool players resolve during reconciliation.
	defaultMLBLeaderLimit = 500
)

// MLBConfig controls how we talk to the MLB Stats API.
type MLBConfig struct {
	BaseURL     string
	Timeout     time.Duration
	LeaderLimit int
}

func loadMLB() MLBConfig {
	return MLBConfig{
		BaseURL:     envOrDefault(envMLBBaseURL, defaultMLBBaseURL),
		Timeout:     durationEnvOrDefault(envMLBTimeout, defaultMLBTimeout),
		LeaderLimit: intEnvOrDefault(envMLBLimit, defaultMLBLeaderLimit),
	}
}
