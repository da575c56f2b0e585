package models

import (
	"time"

	"github.com/google/uuid"
)

// Market identifies a betting market on a match
type Market string

const (
	MarketHomeWin Market = "home_win"
	MarketDraw    Market = "draw"
	MarketAwayWin Market = "away_win"
	MarketOver25  Market = "over_2.5"
	MarketUnder25 Market = "under_2.5"
)

// MatchResult represents the realized full-time result of a match
type MatchResult string

const (
	ResultHome MatchResult = "HOME"
	ResultDraw MatchResult = "DRAW"
	ResultAway MatchResult = "AWAY"
)

// MatchOdds holds decimal odds for the markets tracked per match.
// Fields are pointers because providers frequently supply partial books.
type MatchOdds struct {
	Home    *float64 `db:"home" json:"home"`
	Draw    *float64 `db:"draw" json:"draw"`
	Away    *float64 `db:"away" json:"away"`
	Over25  *float64 `db:"over_2_5" json:"over_2_5"`
	Under25 *float64 `db:"under_2_5" json:"under_2_5"`
}

// ForMarket returns the odds for a market, or nil if not quoted
func (o *MatchOdds) ForMarket(market Market) *float64 {
	if o == nil {
		return nil
	}
	switch market {
	case MarketHomeWin:
		return o.Home
	case MarketDraw:
		return o.Draw
	case MarketAwayWin:
		return o.Away
	case MarketOver25:
		return o.Over25
	case MarketUnder25:
		return o.Under25
	}
	return nil
}

// ExpectedGoals holds an optional xG pair for a match
type ExpectedGoals struct {
	Home float64 `db:"home" json:"home"`
	Away float64 `db:"away" json:"away"`
}

// Match represents a single historical match with final scores and odds.
// Records are owned by the repository; the engine never mutates them.
type Match struct {
	ID          uuid.UUID      `db:"id" json:"id" validate:"required"`
	MatchKey    string         `db:"match_key" json:"match_key" validate:"required"`
	Date        time.Time      `db:"date" json:"date" validate:"required"`
	Season      string         `db:"season" json:"season" validate:"required"`
	League      string         `db:"league" json:"league"`
	HomeTeam    string         `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string         `db:"away_team" json:"away_team" validate:"required"`
	HomeScore   *int           `db:"home_score" json:"home_score" validate:"omitempty,gte=0"`
	AwayScore   *int           `db:"away_score" json:"away_score" validate:"omitempty,gte=0"`
	OddsOpening *MatchOdds     `db:"odds_opening" json:"odds_opening"`
	OddsClosing *MatchOdds     `db:"odds_closing" json:"odds_closing"`
	XG          *ExpectedGoals `db:"xg" json:"xg"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// HasScores reports whether both final scores are present
func (m *Match) HasScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Result derives the full-time result from the scores.
// The second return value is false when scores are missing.
func (m *Match) Result() (MatchResult, bool) {
	if !m.HasScores() {
		return "", false
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return ResultHome, true
	case *m.HomeScore < *m.AwayScore:
		return ResultAway, true
	default:
		return ResultDraw, true
	}
}

// TotalGoals returns home score + away score
func (m *Match) TotalGoals() (int, bool) {
	if !m.HasScores() {
		return 0, false
	}
	return *m.HomeScore + *m.AwayScore, true
}

// Involves reports whether the team played in this match (exact name)
func (m *Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// IsHome reports whether the team played at home in this match
func (m *Match) IsHome(team string) bool {
	return m.HomeTeam == team
}

// BestOdds selects odds for a market from the closing book, falling back
// to the opening book when the closing price is absent.
func (m *Match) BestOdds(market Market) (odds float64, source OddsSource, ok bool) {
	if v := m.OddsClosing.ForMarket(market); v != nil && *v > 1.0 {
		return *v, OddsSourceClosing, true
	}
	if v := m.OddsOpening.ForMarket(market); v != nil && *v > 1.0 {
		return *v, OddsSourceOpening, true
	}
	return 0, "", false
}
