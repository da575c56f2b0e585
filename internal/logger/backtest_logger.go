// Package logger provides backtest-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for strategy evaluation runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRuleEvaluation logs the outcome of a single rule evaluation.
func (bl *BacktestLogger) LogRuleEvaluation(team, market string, matchesScanned, betsPlaced int, netProfit, roi float64, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"team":            team,
		"market":          market,
		"matches_scanned": matchesScanned,
		"bets_placed":     betsPlaced,
		"net_profit":      netProfit,
		"roi":             roi,
		"duration_ms":     durationMs,
	}).Info("Rule evaluation completed")
}

// LogBetSettlement logs a settled bet at debug level.
func (bl *BacktestLogger) LogBetSettlement(matchKey, team, market, result string, odds, stake, profitLoss float64) {
	bl.WithFields(logrus.Fields{
		"match_key":   matchKey,
		"team":        team,
		"market":      market,
		"result":      result,
		"odds":        odds,
		"stake":       stake,
		"profit_loss": profitLoss,
	}).Debug("Bet settled")
}

// LogBootstrapRun logs the summary of a bootstrap resampling run.
func (bl *BacktestLogger) LogBootstrapRun(iterations, sampleSize int, meanProfit, profitProbability, ruinProbability float64) {
	bl.WithFields(logrus.Fields{
		"iterations":         iterations,
		"sample_size":        sampleSize,
		"mean_profit":        meanProfit,
		"profit_probability": profitProbability,
		"ruin_probability":   ruinProbability,
	}).Info("Bootstrap simulation completed")
}

// LogEquityExport logs an equity curve export.
func (bl *BacktestLogger) LogEquityExport(path, format string, points int) {
	bl.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"points": points,
	}).Info("Equity curve exported")
}
