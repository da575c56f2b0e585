package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const dataSourceDisabledMsg = "data source is disabled"

// DataSource defines the interface for fetching match data from external providers
type DataSource interface {
	// FetchSeason retrieves all matches for a season in "YYYY/YY" notation
	FetchSeason(ctx context.Context, season string) ([]MatchData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// MatchData represents normalized match data from any data source.
// Odds-only providers leave the scores nil; the ingestion service merges
// partial records on (date, home, away).
type MatchData struct {
	SourceID  string    `json:"source_id"`  // Provider's unique match ID
	League    string    `json:"league"`     // Competition code (e.g., "EPL")
	Season    string    `json:"season"`     // Season in "2023/24" notation
	Date      time.Time `json:"date"`       // Kickoff time UTC
	HomeTeam  string    `json:"home_team"`  // Provider's home team name, unresolved
	AwayTeam  string    `json:"away_team"`  // Provider's away team name, unresolved
	HomeScore *int      `json:"home_score"` // Full-time home score if finished
	AwayScore *int      `json:"away_score"` // Full-time away score if finished
	Odds      *OddsData `json:"odds"`       // Odds book if the provider quotes one
	CreatedAt time.Time `json:"created_at"` // When data was fetched
}

// OddsData holds decimal odds for the tracked markets as quoted by a provider
type OddsData struct {
	Home    *decimal.Decimal `json:"home"`
	Draw    *decimal.Decimal `json:"draw"`
	Away    *decimal.Decimal `json:"away"`
	Over25  *decimal.Decimal `json:"over_2_5"`
	Under25 *decimal.Decimal `json:"under_2_5"`
	Closing bool             `json:"closing"` // true for closing lines, false for opening
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
