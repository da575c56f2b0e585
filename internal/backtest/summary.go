package backtest

import (
	"github.com/yourusername/betlab/internal/scoring"
)

// ProfitFactorNoLosses is the sentinel reported when gross losses is zero
// but the run turned a profit. The Defined flag tells renderers apart from
// an ordinary ratio.
const ProfitFactorNoLosses = 999.0

// Summary holds the headline statistics of one evaluation run
type Summary struct {
	TotalBets           int     `json:"total_bets"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	Voids               int     `json:"voids"`
	TotalStaked         float64 `json:"total_staked"`
	TotalReturned       float64 `json:"total_returned"`
	NetProfit           float64 `json:"net_profit"`
	ROI                 float64 `json:"roi"`
	WinRate             float64 `json:"win_rate"`
	AverageOdds         float64 `json:"average_odds"`
	ProfitFactor        float64 `json:"profit_factor"`
	ProfitFactorDefined bool    `json:"profit_factor_defined"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	Confidence          float64 `json:"confidence"`
}

// Summarize derives the summary from accumulated state. Every ratio guards
// its denominator: zero bets or zero staked yields zeros, never a fault.
func Summarize(state *State) Summary {
	summary := Summary{}
	if state == nil {
		return summary
	}

	// Voids sit outside TotalBets; they are tracked in their own counter and
	// never dilute the win rate or the stake denominators.
	settled := state.Wins + state.Losses
	summary.TotalBets = settled
	summary.Wins = state.Wins
	summary.Losses = state.Losses
	summary.Voids = state.Voids
	summary.TotalStaked = state.TotalStaked
	summary.TotalReturned = state.TotalReturned
	summary.NetProfit = state.TotalReturned - state.TotalStaked

	if state.TotalStaked > 0 {
		summary.ROI = summary.NetProfit / state.TotalStaked * 100
	}
	if settled > 0 {
		summary.WinRate = float64(state.Wins) / float64(settled) * 100
	}
	if placed := len(state.Bets); placed > 0 {
		summary.AverageOdds = state.OddsSum / float64(placed)
	}

	summary.ProfitFactor, summary.ProfitFactorDefined = profitFactor(state.GrossProfit, state.GrossLoss)
	summary.MaxDrawdown = state.Equity.MaxDrawdown()
	summary.Confidence = scoring.SampleConfidence(settled)

	return summary
}

func profitFactor(grossProfit, grossLoss float64) (float64, bool) {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return ProfitFactorNoLosses, false
		}
		return 0, false
	}
	return grossProfit / grossLoss, true
}
