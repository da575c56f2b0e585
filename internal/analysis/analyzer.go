package analysis

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/betlab/internal/backtest"
	"github.com/yourusername/betlab/internal/models"
)

// venueROIStake is the fixed stake used for the per-venue ROI backtests
const venueROIStake = 100.0

// Analyzer computes per-team performance splits. Stateless and safe for
// concurrent use.
type Analyzer struct {
	evaluator *backtest.Evaluator
	logger    *logrus.Logger
}

// NewAnalyzer creates a new team performance analyzer
func NewAnalyzer(logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		evaluator: backtest.NewEvaluator(backtest.DefaultBankroll, logger),
		logger:    logger,
	}
}

// AnalyzeTeam builds the TeamAnalysis for a canonical team name over the
// supplied matches. An empty team name or empty match set yields a
// zero-valued analysis rather than an error. Duplicate records from
// independent fetches are de-duplicated by match identity; matches missing
// scores are excluded from every aggregate.
func (a *Analyzer) AnalyzeTeam(team, season string, matches []*models.Match) *models.TeamAnalysis {
	analysis := &models.TeamAnalysis{Team: team, Season: season}
	if team == "" {
		return analysis
	}

	unique := dedupe(matches, team, season)

	over25 := 0
	countedGoals := 0
	for _, m := range unique {
		if !m.HasScores() {
			continue
		}

		record := &analysis.Away
		goalsFor, goalsAgainst := *m.AwayScore, *m.HomeScore
		if m.IsHome(team) {
			record = &analysis.Home
			goalsFor, goalsAgainst = *m.HomeScore, *m.AwayScore
		}

		record.Played++
		record.GoalsFor += goalsFor
		record.GoalsAgainst += goalsAgainst
		switch {
		case goalsFor > goalsAgainst:
			record.Wins++
		case goalsFor < goalsAgainst:
			record.Losses++
		default:
			record.Draws++
		}

		total, _ := m.TotalGoals()
		countedGoals++
		if total > 2 {
			over25++
		}
	}

	analysis.MatchesPlayed = analysis.Home.Played + analysis.Away.Played

	analysis.Betting.ROIHome = a.venueROI(team, season, models.SideHome, models.MarketHomeWin, unique)
	analysis.Betting.ROIAway = a.venueROI(team, season, models.SideAway, models.MarketAwayWin, unique)

	if countedGoals > 0 {
		analysis.Betting.Over25Rate = float64(over25) / float64(countedGoals) * 100
		analysis.Betting.Under25Rate = float64(countedGoals-over25) / float64(countedGoals) * 100
	}

	// ROIAsFavorite / ROIAsUnderdog stay 0: the odds-implied classification
	// rule is not defined for this dataset yet.

	return analysis
}

func (a *Analyzer) venueROI(team, season string, side models.RuleSide, market models.Market, matches []*models.Match) float64 {
	rule := &models.BettingRule{
		Team:   team,
		Market: market,
		Side:   side,
		Stake:  venueROIStake,
		Season: season,
	}
	result, err := a.evaluator.Evaluate(matches, rule)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{"team": team, "side": side}).Warn("Venue ROI evaluation failed")
		return 0
	}
	return result.Summary.ROI
}

func dedupe(matches []*models.Match, team, season string) []*models.Match {
	seen := make(map[uuid.UUID]bool, len(matches))
	unique := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m == nil || !m.Involves(team) {
			continue
		}
		if season != "" && m.Season != season {
			continue
		}
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		unique = append(unique, m)
	}
	return unique
}
