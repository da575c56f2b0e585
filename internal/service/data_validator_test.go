package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/betlab/internal/datasource"
)

func validRecord() datasource.MatchData {
	home := 2
	away := 1
	price := decimal.NewFromFloat(1.85)
	return datasource.MatchData{
		SourceID:  "441234",
		League:    "EPL",
		Season:    "2023/24",
		Date:      time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC),
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		HomeScore: &home,
		AwayScore: &away,
		Odds:      &datasource.OddsData{Home: &price},
	}
}

// TestValidateMatchValid tests validation of a correct record
func TestValidateMatchValid(t *testing.T) {
	validator := NewDataValidator()

	record := validRecord()
	if errs := validator.ValidateMatch(&record); len(errs) > 0 {
		t.Errorf("Expected no errors, got: %v", errs)
	}
}

// TestValidateMatchRequiredFields tests missing field rejection
func TestValidateMatchRequiredFields(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name   string
		mutate func(*datasource.MatchData)
	}{
		{"missing home team", func(r *datasource.MatchData) { r.HomeTeam = "" }},
		{"missing away team", func(r *datasource.MatchData) { r.AwayTeam = "" }},
		{"same teams", func(r *datasource.MatchData) { r.AwayTeam = r.HomeTeam }},
		{"zero date", func(r *datasource.MatchData) { r.Date = time.Time{} }},
		{"bad season notation", func(r *datasource.MatchData) { r.Season = "2023-24" }},
		{"far future date", func(r *datasource.MatchData) { r.Date = time.Now().Add(400 * 24 * time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(&record)
			if errs := validator.ValidateMatch(&record); len(errs) == 0 {
				t.Error("Expected validation errors, got none")
			}
		})
	}
}

// TestValidateMatchScorePairing tests that scores must come as a pair
func TestValidateMatchScorePairing(t *testing.T) {
	validator := NewDataValidator()

	record := validRecord()
	record.AwayScore = nil
	if errs := validator.ValidateMatch(&record); len(errs) == 0 {
		t.Error("Expected error for lone home score")
	}

	record = validRecord()
	record.HomeScore = nil
	record.AwayScore = nil
	if errs := validator.ValidateMatch(&record); len(errs) != 0 {
		t.Errorf("Expected scoreless record to pass, got: %v", errs)
	}
}

// TestValidateMatchScoreRange tests score bounds
func TestValidateMatchScoreRange(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name  string
		score int
		valid bool
	}{
		{"zero", 0, true},
		{"typical", 3, true},
		{"maximum plausible", 15, true},
		{"negative", -1, false},
		{"implausibly high", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			record.HomeScore = &tt.score
			errs := validator.ValidateMatch(&record)
			if (len(errs) == 0) != tt.valid {
				t.Errorf("Expected valid=%v, got errors=%v", tt.valid, errs)
			}
		})
	}
}

// TestValidateMatchOddsRange tests odds bounds
func TestValidateMatchOddsRange(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"valid short price", "1.01", true},
		{"valid long price", "1000", true},
		{"even money boundary", "1.00", false},
		{"below minimum", "0.95", false},
		{"above maximum", "1001", false},
		{"negative", "-1.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.price)
			if err != nil {
				t.Fatalf("bad price literal: %v", err)
			}

			record := validRecord()
			record.Odds = &datasource.OddsData{Draw: &price}
			errs := validator.ValidateMatch(&record)
			if (len(errs) == 0) != tt.valid {
				t.Errorf("Expected valid=%v, got errors=%v", tt.valid, errs)
			}
		})
	}
}
