package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// FootballDataClient implements DataSource for the football-data.org API.
// It supplies fixtures and final scores; odds come from a separate provider.
type FootballDataClient struct {
	httpClient    *RateLimitedHTTPClient
	baseURL       string
	apiKey        string
	competitionID string
	enabled       bool
	logger        *log.Logger
}

// footballDataResponse represents the matches envelope from football-data.org
type footballDataResponse struct {
	Matches []footballDataMatch `json:"matches"`
}

// footballDataMatch represents a single match from football-data.org
type footballDataMatch struct {
	ID      int64  `json:"id"`
	UTCDate string `json:"utcDate"`
	Status  string `json:"status"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

// NewFootballDataClient creates a new football-data.org API client
func NewFootballDataClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, competitionID string, enabled bool, logger *log.Logger) *FootballDataClient {
	return &FootballDataClient{
		httpClient:    httpClient,
		baseURL:       baseURL,
		apiKey:        apiKey,
		competitionID: competitionID,
		enabled:       enabled,
		logger:        logger,
	}
}

// FetchSeason retrieves all matches for a season
func (c *FootballDataClient) FetchSeason(ctx context.Context, season string) ([]MatchData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("football_data", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	startYear, err := seasonStartYear(season)
	if err != nil {
		return nil, NewDataSourceError("football_data", ErrCodeInvalidData, "invalid season", err)
	}

	url := fmt.Sprintf("%s/competitions/%s/matches?season=%s", c.baseURL, c.competitionID, startYear)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("football_data", ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("football_data", ErrCodeNetworkError, "failed to fetch matches", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, NewDataSourceError("football_data", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("football_data", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("football_data", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var envelope footballDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, NewDataSourceError("football_data", ErrCodeInvalidData, "failed to parse response", err)
	}

	matches := make([]MatchData, 0, len(envelope.Matches))
	for _, fdMatch := range envelope.Matches {
		match, err := c.convertMatch(&fdMatch, season)
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Failed to convert match %d: %v", fdMatch.ID, err)
			}
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}

// Name returns the data source name
func (c *FootballDataClient) Name() string {
	return "football_data"
}

// IsEnabled returns whether this data source is enabled
func (c *FootballDataClient) IsEnabled() bool {
	return c.enabled
}

// convertMatch converts football-data.org match format to MatchData
func (c *FootballDataClient) convertMatch(fdMatch *footballDataMatch, season string) (*MatchData, error) {
	kickoff, err := time.Parse(time.RFC3339, fdMatch.UTCDate)
	if err != nil {
		return nil, fmt.Errorf("invalid kickoff time %q: %w", fdMatch.UTCDate, err)
	}

	match := &MatchData{
		SourceID:  fmt.Sprintf("%d", fdMatch.ID),
		League:    c.competitionID,
		Season:    season,
		Date:      kickoff,
		HomeTeam:  fdMatch.HomeTeam.Name,
		AwayTeam:  fdMatch.AwayTeam.Name,
		CreatedAt: time.Now(),
	}

	// Scores are only trustworthy once the match is finished
	if fdMatch.Status == "FINISHED" {
		match.HomeScore = fdMatch.Score.FullTime.Home
		match.AwayScore = fdMatch.Score.FullTime.Away
	}

	return match, nil
}

// seasonStartYear extracts the starting year from "2023/24" notation
func seasonStartYear(season string) (string, error) {
	parts := strings.SplitN(season, "/", 2)
	if len(parts) != 2 || len(parts[0]) != 4 {
		return "", fmt.Errorf("invalid season notation: %s", season)
	}
	return parts[0], nil
}
