package mlbstats

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/providers"
)

// Config controls how the MLB Stats API client reaches upstream.
type Config struct {
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	LeaderLimit int
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches season home-run leaders from the MLB Stats API and maps
// them to domain players.
type Client struct {
	baseURL     string
	httpClient  httpDoer
	now         func() time.Time
	leaderLimit int
}

// NewClient constructs an MLB Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		httpClient:  resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:         time.Now,
		leaderLimit: resolveLeaderLimit(cfg.LeaderLimit),
	}
}

// FetchLeaders retrieves the season's home-run leaderboard.
func (c *Client) FetchLeaders(ctx context.Context, season int) (domain.Snapshot, error) {
	req, err := c.buildRequest(ctx, season)
	if err != nil {
		return domain.Snapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Snapshot{}, &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var payload leadersResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return domain.Snapshot{}, &providers.MalformedError{
			Provider: providerName,
			Reason:   decodeErr.Error(),
		}
	}

	if len(payload.LeagueLeaders) == 0 || len(payload.LeagueLeaders[0].Leaders) == 0 {
		return domain.Snapshot{}, &providers.MalformedError{
			Provider: providerName,
			Reason:   "no home-run leaders in response",
		}
	}

	leaders := payload.LeagueLeaders[0].Leaders
	players := make([]domain.Player, 0, len(leaders))
	for _, l := range leaders {
		players = append(players, mapLeader(l))
	}

	return domain.Snapshot{
		Season:    season,
		Players:   players,
		FetchedAt: c.now().UTC(),
		Source:    domain.SourceLive,
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, season int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats/leaders", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("leaderCategories", leaderCategory)
	q.Set("season", strconv.Itoa(season))
	q.Set("limit", strconv.Itoa(c.leaderLimit))
	q.Set("sportId", sportID)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return defaultBaseURL
	}
	return strings.TrimSuffix(baseURL, "/")
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func resolveLeaderLimit(limit int) int {
	if limit <= 0 {
		return defaultLeaderLimit
	}
	return limit
}
