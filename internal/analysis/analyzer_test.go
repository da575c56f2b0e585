package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/betlab/internal/models"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func buildMatch(date string, home, away string, homeScore, awayScore int, homeOdds, awayOdds float64) *models.Match {
	d, _ := time.Parse("2006-01-02", date)
	return &models.Match{
		ID:        uuid.New(),
		MatchKey:  "EPL_" + date + "_" + home + "_" + away,
		Date:      d,
		Season:    "2023/24",
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: ip(homeScore),
		AwayScore: ip(awayScore),
		OddsClosing: &models.MatchOdds{
			Home: fp(homeOdds),
			Away: fp(awayOdds),
		},
	}
}

func TestAnalyzeTeamRecords(t *testing.T) {
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50), // home win
		buildMatch("2024-01-13", "Arsenal", "Everton", 1, 1, 1.60, 5.50), // home draw
		buildMatch("2024-01-20", "Fulham", "Arsenal", 2, 1, 3.20, 2.10),  // away loss
		buildMatch("2024-01-27", "Burnley", "Arsenal", 0, 3, 5.00, 1.65), // away win
	}

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", matches)

	assert.Equal(t, 4, analysis.MatchesPlayed)
	assert.Equal(t, models.VenueRecord{Played: 2, Wins: 1, Draws: 1, GoalsFor: 3, GoalsAgainst: 1}, analysis.Home)
	assert.Equal(t, models.VenueRecord{Played: 2, Wins: 1, Losses: 1, GoalsFor: 4, GoalsAgainst: 2}, analysis.Away)
}

func TestAnalyzeTeamGoalMarketRates(t *testing.T) {
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 2, 1.80, 4.50), // 4 goals: over
		buildMatch("2024-01-13", "Arsenal", "Everton", 1, 0, 1.60, 5.50), // 1 goal: under
		buildMatch("2024-01-20", "Fulham", "Arsenal", 2, 2, 3.20, 2.10),  // 4 goals: over
		buildMatch("2024-01-27", "Burnley", "Arsenal", 1, 1, 5.00, 1.65), // 2 goals: under
	}

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", matches)

	assert.InDelta(t, 50.0, analysis.Betting.Over25Rate, 1e-9)
	assert.InDelta(t, 50.0, analysis.Betting.Under25Rate, 1e-9)
}

func TestAnalyzeTeamVenueROI(t *testing.T) {
	// Two home wins at 1.80 and 2.00 with stake 100 each: ROI 90%
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50),
		buildMatch("2024-01-20", "Arsenal", "Everton", 3, 1, 2.00, 4.00),
	}

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", matches)

	assert.InDelta(t, 90.0, analysis.Betting.ROIHome, 1e-9)
	assert.Zero(t, analysis.Betting.ROIAway)
}

func TestAnalyzeTeamReservedFavoriteFieldsStayZero(t *testing.T) {
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50),
	}

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", matches)

	assert.Zero(t, analysis.Betting.ROIAsFavorite)
	assert.Zero(t, analysis.Betting.ROIAsUnderdog)
}

func TestAnalyzeTeamDeduplicatesByIdentity(t *testing.T) {
	m := buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50)
	duplicate := *m

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", []*models.Match{m, &duplicate})

	assert.Equal(t, 1, analysis.MatchesPlayed)
}

func TestAnalyzeTeamUnknownTeamIsZeroValued(t *testing.T) {
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50),
	}

	analysis := NewAnalyzer(nil).AnalyzeTeam("", "", matches)
	require.NotNil(t, analysis)
	assert.Zero(t, analysis.MatchesPlayed)
	assert.Zero(t, analysis.Betting.ROIHome)
}

func TestAnalyzeTeamSeasonFilter(t *testing.T) {
	old := buildMatch("2023-01-07", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50)
	old.Season = "2022/23"
	current := buildMatch("2024-01-06", "Arsenal", "Everton", 1, 0, 1.70, 5.00)

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "2023/24", []*models.Match{old, current})

	assert.Equal(t, 1, analysis.MatchesPlayed)
}

func TestAnalyzeTeamSkipsIncompleteRecords(t *testing.T) {
	complete := buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50)
	pending := buildMatch("2024-01-13", "Arsenal", "Everton", 0, 0, 1.70, 5.00)
	pending.HomeScore = nil
	pending.AwayScore = nil

	analysis := NewAnalyzer(nil).AnalyzeTeam("Arsenal", "", []*models.Match{complete, pending})

	assert.Equal(t, 1, analysis.MatchesPlayed)
	assert.InDelta(t, 100.0, analysis.Betting.Under25Rate, 1e-9)
}
