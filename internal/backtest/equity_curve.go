package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// EquityPoint is one point of the equity curve: cumulative profit, running
// bankroll and the drawdown percentage from the running peak.
type EquityPoint struct {
	Date          time.Time `json:"date"`
	CumulativePnL float64   `json:"cumulative_pnl"`
	Bankroll      float64   `json:"bankroll"`
	Drawdown      float64   `json:"drawdown"`
}

// EquityCurve is the chronological sequence of equity points for one run
type EquityCurve []EquityPoint

// MaxDrawdown returns the largest drawdown percentage observed
func (e EquityCurve) MaxDrawdown() float64 {
	maxDD := 0.0
	for _, p := range e {
		if p.Drawdown > maxDD {
			maxDD = p.Drawdown
		}
	}
	return maxDD
}

// Returns calculates periodic bankroll returns between points
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Bankroll
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Bankroll-prev)/prev)
	}
	return returns
}

// ToCSV exports the curve for spreadsheets and chart builders
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,cumulative_pnl,bankroll,drawdown\n")
	for _, point := range e {
		buf.WriteString(point.Date.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.CumulativePnL))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Bankroll))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the curve as a JSON array
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
