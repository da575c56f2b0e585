package models

import (
	"time"

	"github.com/google/uuid"
)

// OddsSource indicates which book supplied the price used for a bet
type OddsSource string

const (
	OddsSourceOpening OddsSource = "opening"
	OddsSourceClosing OddsSource = "closing"
)

// BetResult represents the settlement outcome of an evaluated bet
type BetResult string

const (
	BetWin  BetResult = "win"
	BetLoss BetResult = "loss"
	BetVoid BetResult = "void"
)

// BetOutcome is one evaluated bet in a backtest, ordered chronologically
// within the bet log. Produced once per qualifying match.
type BetOutcome struct {
	MatchID    uuid.UUID  `json:"match_id"`
	MatchKey   string     `json:"match_key"`
	Date       time.Time  `json:"date"`
	Team       string     `json:"team"`
	Opponent   string     `json:"opponent"`
	Market     Market     `json:"market"`
	Odds       float64    `json:"odds"`
	OddsSource OddsSource `json:"odds_source"`
	Stake      float64    `json:"stake"`
	Result     BetResult  `json:"result"`
	ProfitLoss float64    `json:"profit_loss"`
}

// ROI returns the return on investment percentage for this bet
func (b *BetOutcome) ROI() float64 {
	if b.Stake == 0 {
		return 0
	}
	return b.ProfitLoss / b.Stake * 100
}

// IsSettled reports whether the bet counts toward win-rate figures.
// Void bets are excluded from both the numerator and the denominator.
func (b *BetOutcome) IsSettled() bool {
	return b.Result == BetWin || b.Result == BetLoss
}
