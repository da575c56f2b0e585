// Package backtest evaluates betting rules against historical match data.
package backtest

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/betlab/internal/models"
)

// DefaultBankroll is the starting bankroll when the caller does not set one
const DefaultBankroll = 1000.0

// Evaluator applies a BettingRule to an ordered set of matches and produces
// a bet-by-bet log, an equity curve and summary statistics. It performs no
// I/O and holds no mutable state between calls, so a single instance is safe
// for concurrent use.
type Evaluator struct {
	initialBankroll float64
	logger          *logrus.Logger
}

// NewEvaluator creates a new strategy evaluator
func NewEvaluator(initialBankroll float64, logger *logrus.Logger) *Evaluator {
	if initialBankroll <= 0 {
		initialBankroll = DefaultBankroll
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{initialBankroll: initialBankroll, logger: logger}
}

// Result bundles everything one evaluation produces
type Result struct {
	Summary Summary              `json:"summary"`
	Bets    []*models.BetOutcome `json:"bets"`
	Equity  EquityCurve          `json:"equity"`
}

// Evaluate runs the rule over the supplied matches. Repositories return
// matches newest-first; the input is re-sorted oldest-first before
// accumulation so the equity curve is chronological. Zero qualifying
// matches is not an error: the result carries an all-zero summary.
func (e *Evaluator) Evaluate(matches []*models.Match, rule *models.BettingRule) (*Result, error) {
	if rule == nil {
		return nil, fmt.Errorf("betting rule is required")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]*models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	state := NewState(e.initialBankroll)

	for _, match := range ordered {
		bet, ok := e.evaluateMatch(match, rule, state)
		if !ok {
			continue
		}
		state.RecordBet(bet)
	}

	summary := Summarize(state)

	e.logger.WithFields(logrus.Fields{
		"team":       rule.Team,
		"market":     rule.Market,
		"side":       rule.Side,
		"total_bets": summary.TotalBets,
		"roi":        summary.ROI,
	}).Debug("Rule evaluation complete")

	return &Result{Summary: summary, Bets: state.Bets, Equity: state.Equity}, nil
}

// evaluateMatch decides whether the rule bets on this match and settles the
// bet against the final score. Matches with missing scores or without a
// usable price are skipped and never counted.
func (e *Evaluator) evaluateMatch(match *models.Match, rule *models.BettingRule, state *State) (*models.BetOutcome, bool) {
	if match == nil || !rule.AppliesTo(match) {
		return nil, false
	}
	if !match.HasScores() {
		return nil, false
	}

	market := rule.MarketFor(match)
	odds, source, ok := match.BestOdds(market)
	if !ok {
		return nil, false
	}
	if rule.MinOdds != nil && odds < *rule.MinOdds {
		return nil, false
	}
	if rule.MaxOdds != nil && odds > *rule.MaxOdds {
		return nil, false
	}

	stake := rule.Stake
	if rule.StakePercent != nil {
		stake = state.CurrentBankroll * *rule.StakePercent / 100
	}
	if stake <= 0 {
		return nil, false
	}

	won, ok := marketWins(match, market)
	if !ok {
		return nil, false
	}

	result := models.BetLoss
	pnl := -stake
	if won {
		result = models.BetWin
		pnl = stake * (odds - 1)
	}

	opponent := match.AwayTeam
	if !match.IsHome(rule.Team) {
		opponent = match.HomeTeam
	}

	return &models.BetOutcome{
		MatchID:    match.ID,
		MatchKey:   match.MatchKey,
		Date:       match.Date,
		Team:       rule.Team,
		Opponent:   opponent,
		Market:     market,
		Odds:       odds,
		OddsSource: source,
		Stake:      stake,
		Result:     result,
		ProfitLoss: pnl,
	}, true
}

// marketWins settles a market against the realized result
func marketWins(match *models.Match, market models.Market) (bool, bool) {
	switch market {
	case models.MarketHomeWin, models.MarketDraw, models.MarketAwayWin:
		result, ok := match.Result()
		if !ok {
			return false, false
		}
		switch market {
		case models.MarketHomeWin:
			return result == models.ResultHome, true
		case models.MarketAwayWin:
			return result == models.ResultAway, true
		default:
			return result == models.ResultDraw, true
		}
	case models.MarketOver25, models.MarketUnder25:
		total, ok := match.TotalGoals()
		if !ok {
			return false, false
		}
		if market == models.MarketOver25 {
			return total > 2, true
		}
		return total <= 2, true
	}
	return false, false
}
