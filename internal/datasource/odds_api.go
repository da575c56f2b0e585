package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const totalsLine = 2.5

// OddsAPIClient implements DataSource for the-odds-api.com. The provider
// only quotes the live book, so records carry odds but no scores and the
// ingestion service merges them onto fixtures from football-data.org.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	sportKey   string
	regions    string
	enabled    bool
	logger     *log.Logger
}

// oddsAPIEvent represents an event from the-odds-api.com
type oddsAPIEvent struct {
	ID           string             `json:"id"`
	CommenceTime string             `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []oddsAPIBookmaker `json:"bookmakers"`
}

type oddsAPIBookmaker struct {
	Key     string          `json:"key"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

type oddsAPIOutcome struct {
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
	Point *decimal.Decimal `json:"point"`
}

// NewOddsAPIClient creates a new the-odds-api.com client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, sportKey, regions string, enabled bool, logger *log.Logger) *OddsAPIClient {
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		sportKey:   sportKey,
		regions:    regions,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchSeason retrieves the current odds book. The season argument is
// accepted for interface symmetry but the provider has no season filter.
func (c *OddsAPIClient) FetchSeason(ctx context.Context, season string) ([]MatchData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("odds_api", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/sports/%s/odds?apiKey=%s&regions=%s&markets=h2h,totals&oddsFormat=decimal",
		c.baseURL, c.sportKey, c.apiKey, c.regions)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("odds_api", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("odds_api", ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError("odds_api", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("odds_api", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("odds_api", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError("odds_api", ErrCodeInvalidData, "failed to parse response", err)
	}

	matches := make([]MatchData, 0, len(events))
	for _, event := range events {
		match, err := c.convertEvent(&event, season)
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Failed to convert odds event %s: %v", event.ID, err)
			}
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return "odds_api"
}

// IsEnabled returns whether this data source is enabled
func (c *OddsAPIClient) IsEnabled() bool {
	return c.enabled
}

// convertEvent converts an odds API event to an odds-only MatchData
func (c *OddsAPIClient) convertEvent(event *oddsAPIEvent, season string) (*MatchData, error) {
	kickoff, err := time.Parse(time.RFC3339, event.CommenceTime)
	if err != nil {
		return nil, fmt.Errorf("invalid commence time %q: %w", event.CommenceTime, err)
	}

	odds := c.extractOdds(event)
	if odds == nil {
		return nil, fmt.Errorf("no usable markets for event %s", event.ID)
	}

	return &MatchData{
		SourceID:  event.ID,
		Season:    season,
		Date:      kickoff,
		HomeTeam:  event.HomeTeam,
		AwayTeam:  event.AwayTeam,
		Odds:      odds,
		CreatedAt: time.Now(),
	}, nil
}

// extractOdds takes the first bookmaker quoting each market
func (c *OddsAPIClient) extractOdds(event *oddsAPIEvent) *OddsData {
	odds := &OddsData{}
	found := false

	for _, bookmaker := range event.Bookmakers {
		for _, market := range bookmaker.Markets {
			switch market.Key {
			case "h2h":
				if odds.Home != nil {
					continue
				}
				for i := range market.Outcomes {
					outcome := market.Outcomes[i]
					price := outcome.Price
					switch outcome.Name {
					case event.HomeTeam:
						odds.Home = &price
						found = true
					case event.AwayTeam:
						odds.Away = &price
						found = true
					case "Draw":
						odds.Draw = &price
						found = true
					}
				}
			case "totals":
				if odds.Over25 != nil {
					continue
				}
				for i := range market.Outcomes {
					outcome := market.Outcomes[i]
					if outcome.Point == nil || !outcome.Point.Equal(decimal.NewFromFloat(totalsLine)) {
						continue
					}
					price := outcome.Price
					switch outcome.Name {
					case "Over":
						odds.Over25 = &price
						found = true
					case "Under":
						odds.Under25 = &price
						found = true
					}
				}
			}
		}
	}

	if !found {
		return nil
	}
	return odds
}
