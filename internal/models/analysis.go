package models

// VenueRecord captures win-draw-loss counts and goals at one venue
type VenueRecord struct {
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// BettingStats aggregates realized betting performance for a team.
// ROIAsFavorite and ROIAsUnderdog are reserved: the odds-implied
// favorite/underdog classification is not computed yet and both stay 0.
type BettingStats struct {
	ROIHome       float64 `json:"roi_home"`
	ROIAway       float64 `json:"roi_away"`
	ROIAsFavorite float64 `json:"roi_as_favorite"`
	ROIAsUnderdog float64 `json:"roi_as_underdog"`
	Over25Rate    float64 `json:"over_2_5_rate"`
	Under25Rate   float64 `json:"under_2_5_rate"`
}

// TeamAnalysis is the per-team performance split produced by the analyzer
type TeamAnalysis struct {
	Team          string       `json:"team"`
	Season        string       `json:"season,omitempty"`
	MatchesPlayed int          `json:"matches_played"`
	Home          VenueRecord  `json:"home"`
	Away          VenueRecord  `json:"away"`
	Betting       BettingStats `json:"betting"`
}
