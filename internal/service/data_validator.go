package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/betlab/internal/datasource"
)

const (
	maxPlausibleScore = 15
	minValidOdds      = 1.0
	maxValidOdds      = 1000.0
)

var seasonNotation = regexp.MustCompile(`^\d{4}/\d{2}$`)

// DataValidator validates provider records at the ingestion boundary.
// Records that fail are quarantined, never silently repaired.
type DataValidator struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateMatch validates a provider match record for required fields and constraints
func (v *DataValidator) ValidateMatch(record *datasource.MatchData) []string {
	var errors []string

	if record.HomeTeam == "" {
		errors = append(errors, "home_team is required")
	}
	if record.AwayTeam == "" {
		errors = append(errors, "away_team is required")
	}
	if record.HomeTeam != "" && record.HomeTeam == record.AwayTeam {
		errors = append(errors, "home_team and away_team must differ")
	}

	if record.Date.IsZero() {
		errors = append(errors, "date is required")
	}

	if record.Season != "" && !seasonNotation.MatchString(record.Season) {
		errors = append(errors, fmt.Sprintf("season must use 2023/24 notation, got %s", record.Season))
	}

	// A match can't be dated meaningfully ahead of the fixture list
	if !record.Date.IsZero() && record.Date.After(time.Now().Add(365*24*time.Hour)) {
		errors = append(errors, "match dated more than 1 year in future")
	}

	// Scores must come as a pair
	if (record.HomeScore == nil) != (record.AwayScore == nil) {
		errors = append(errors, "scores must be both present or both absent")
	}
	if record.HomeScore != nil {
		if *record.HomeScore < 0 || *record.HomeScore > maxPlausibleScore {
			errors = append(errors, fmt.Sprintf("home_score out of range, got %d", *record.HomeScore))
		}
	}
	if record.AwayScore != nil {
		if *record.AwayScore < 0 || *record.AwayScore > maxPlausibleScore {
			errors = append(errors, fmt.Sprintf("away_score out of range, got %d", *record.AwayScore))
		}
	}

	if record.Odds != nil {
		errors = append(errors, v.validateOdds(record.Odds)...)
	}

	return errors
}

// validateOdds checks every quoted price against the plausible decimal range
func (v *DataValidator) validateOdds(odds *datasource.OddsData) []string {
	var errors []string

	prices := map[string]*decimal.Decimal{
		"home":      odds.Home,
		"draw":      odds.Draw,
		"away":      odds.Away,
		"over_2.5":  odds.Over25,
		"under_2.5": odds.Under25,
	}

	for market, price := range prices {
		if price == nil {
			continue
		}
		if price.LessThanOrEqual(decimal.NewFromFloat(minValidOdds)) {
			errors = append(errors, fmt.Sprintf("%s odds must exceed %.2f, got %s", market, minValidOdds, price))
		}
		if price.GreaterThan(decimal.NewFromFloat(maxValidOdds)) {
			errors = append(errors, fmt.Sprintf("%s odds above plausible maximum, got %s", market, price))
		}
	}

	return errors
}
