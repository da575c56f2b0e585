package backtest

import (
	"github.com/yourusername/betlab/internal/models"
)

// State tracks running totals while an evaluation accumulates bets.
// Each equity point depends on the running peak, so bets must be recorded
// in chronological order.
type State struct {
	InitialBankroll float64
	CurrentBankroll float64
	PeakBankroll    float64
	CumulativePnL   float64
	TotalStaked     float64
	TotalReturned   float64
	Wins            int
	Losses          int
	Voids           int
	GrossProfit     float64
	GrossLoss       float64
	OddsSum         float64
	Bets            []*models.BetOutcome
	Equity          EquityCurve
}

// NewState initializes evaluation state
func NewState(initialBankroll float64) *State {
	return &State{
		InitialBankroll: initialBankroll,
		CurrentBankroll: initialBankroll,
		PeakBankroll:    initialBankroll,
		Bets:            []*models.BetOutcome{},
		Equity:          EquityCurve{},
	}
}

// RecordBet settles a bet into the running totals and appends an equity
// point. Void bets return their stake and are excluded from the staked and
// win-rate denominators.
func (s *State) RecordBet(bet *models.BetOutcome) {
	s.Bets = append(s.Bets, bet)
	s.OddsSum += bet.Odds

	switch bet.Result {
	case models.BetWin:
		s.Wins++
		s.TotalStaked += bet.Stake
		s.TotalReturned += bet.Stake + bet.ProfitLoss
		s.GrossProfit += bet.ProfitLoss
	case models.BetLoss:
		s.Losses++
		s.TotalStaked += bet.Stake
		s.GrossLoss += -bet.ProfitLoss
	case models.BetVoid:
		s.Voids++
	}

	s.CumulativePnL += bet.ProfitLoss
	s.CurrentBankroll += bet.ProfitLoss
	if s.CurrentBankroll > s.PeakBankroll {
		s.PeakBankroll = s.CurrentBankroll
	}
	s.Equity = append(s.Equity, EquityPoint{
		Date:          bet.Date,
		CumulativePnL: s.CumulativePnL,
		Bankroll:      s.CurrentBankroll,
		Drawdown:      s.currentDrawdown(),
	})
}

// currentDrawdown is the percentage decline from the running peak, 0 when
// the bankroll sits at or above its peak.
func (s *State) currentDrawdown() float64 {
	if s.PeakBankroll <= 0 || s.CurrentBankroll >= s.PeakBankroll {
		return 0
	}
	return (s.PeakBankroll - s.CurrentBankroll) / s.PeakBankroll * 100
}
