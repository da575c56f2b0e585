package datasource

import (
	"fmt"
	"log"

	"github.com/yourusername/betlab/internal/config"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewFootballDataSource creates the fixtures-and-results source
func (f *Factory) NewFootballDataSource(httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	cfg := f.config.DataSources.FootballData
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("football-data API key is required")
	}

	return NewFootballDataClient(httpClient, cfg.BaseURL, cfg.APIKey, cfg.CompetitionID, true, f.logger), nil
}

// NewOddsAPISource creates the odds source. A missing API key disables the
// source instead of failing, since scores alone still make a usable store.
func (f *Factory) NewOddsAPISource(httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	cfg := f.config.DataSources.OddsAPI
	enabled := cfg.APIKey != ""
	if !enabled && f.logger != nil {
		f.logger.Printf("Odds API key missing, source disabled")
	}

	return NewOddsAPIClient(httpClient, cfg.BaseURL, cfg.APIKey, cfg.SportKey, cfg.Regions, enabled, f.logger), nil
}

// NewDataSources creates all configured data sources
func (f *Factory) NewDataSources(httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	footballData, err := f.NewFootballDataSource(httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create football-data source: %w", err)
	}

	oddsAPI, err := f.NewOddsAPISource(httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds API source: %w", err)
	}

	return []DataSource{footballData, oddsAPI}, nil
}
