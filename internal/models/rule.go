package models

import (
	"fmt"
	"time"
)

// RuleSide selects which venue a rule applies to for the target team
type RuleSide string

const (
	SideHome RuleSide = "home"
	SideAway RuleSide = "away"
	SideBoth RuleSide = "both"
)

// BettingRule describes a strategy to evaluate against historical matches.
// It is a value object constructed per request by the caller.
type BettingRule struct {
	Team         string     `json:"team" validate:"required"`
	Market       Market     `json:"market" validate:"required"`
	Side         RuleSide   `json:"side" validate:"required,oneof=home away both"`
	MinOdds      *float64   `json:"min_odds" validate:"omitempty,gt=1"`
	MaxOdds      *float64   `json:"max_odds" validate:"omitempty,gt=1"`
	Stake        float64    `json:"stake" validate:"required,gt=0"`
	StakePercent *float64   `json:"stake_percent" validate:"omitempty,gt=0,lte=100"`
	Season       string     `json:"season"`
	DateFrom     *time.Time `json:"date_from"`
	DateTo       *time.Time `json:"date_to"`
}

// Validate checks the rule for caller contract violations. A rule missing
// its market or side selector is a programming error, not a data condition.
func (r *BettingRule) Validate() error {
	if r.Team == "" {
		return fmt.Errorf("%w: team is required", ErrInvalidRule)
	}
	if r.Market == "" {
		return fmt.Errorf("%w: market is required", ErrInvalidRule)
	}
	switch r.Market {
	case MarketHomeWin, MarketDraw, MarketAwayWin, MarketOver25, MarketUnder25:
	default:
		return fmt.Errorf("%w: unknown market %q", ErrInvalidRule, r.Market)
	}
	switch r.Side {
	case SideHome, SideAway, SideBoth:
	default:
		return fmt.Errorf("%w: side must be home, away or both, got %q", ErrInvalidRule, r.Side)
	}
	if r.Stake <= 0 {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidRule)
	}
	if r.MinOdds != nil && *r.MinOdds <= 1.0 {
		return fmt.Errorf("%w: min odds must be greater than 1.0", ErrInvalidRule)
	}
	if r.MaxOdds != nil && *r.MaxOdds <= 1.0 {
		return fmt.Errorf("%w: max odds must be greater than 1.0", ErrInvalidRule)
	}
	if r.MinOdds != nil && r.MaxOdds != nil && *r.MinOdds > *r.MaxOdds {
		return fmt.Errorf("%w: min odds exceeds max odds", ErrInvalidRule)
	}
	return nil
}

// AppliesTo reports whether a match qualifies for this rule: the team must
// appear on the configured side, within the optional season and date scope.
func (r *BettingRule) AppliesTo(m *Match) bool {
	if !m.Involves(r.Team) {
		return false
	}
	switch r.Side {
	case SideHome:
		if !m.IsHome(r.Team) {
			return false
		}
	case SideAway:
		if m.IsHome(r.Team) {
			return false
		}
	}
	if r.Season != "" && m.Season != r.Season {
		return false
	}
	if r.DateFrom != nil && m.Date.Before(*r.DateFrom) {
		return false
	}
	if r.DateTo != nil && m.Date.After(*r.DateTo) {
		return false
	}
	return true
}

// MarketFor resolves the concrete market to price for one match. Win markets
// follow the team's venue in that match; totals markets are venue-independent.
func (r *BettingRule) MarketFor(m *Match) Market {
	switch r.Market {
	case MarketHomeWin, MarketAwayWin:
		if m.IsHome(r.Team) {
			return MarketHomeWin
		}
		return MarketAwayWin
	default:
		return r.Market
	}
}
