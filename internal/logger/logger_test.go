package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	log := NewLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestBacktestLoggerRuleEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRuleEvaluation("Arsenal", "home_win", 38, 19, 180.0, 90.0, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Arsenal", logEntry["team"])
	assert.Equal(t, "backtest", logEntry["component"])
	assert.Equal(t, 90.0, logEntry["roi"])
}

func TestBacktestLoggerBetSettlement(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogBetSettlement("EPL_2024_01_20_Arsenal_Chelsea", "Arsenal", "home_win", "win", 1.8, 100, 80)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "EPL_2024_01_20_Arsenal_Chelsea", logEntry["match_key"])
	assert.Equal(t, "win", logEntry["result"])
}

func TestIngestionLoggerSyncRun(t *testing.T) {
	log, buf := setupTestLogger()
	ingestionLogger := NewIngestionLogger(log)

	ingestionLogger.LogSyncRun("2023/24", 300, 40, 2, time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "2023/24", logEntry["season"])
	assert.Equal(t, "ingestion", logEntry["component"])
	assert.Equal(t, float64(2), logEntry["quarantined"])
}

func TestIngestionLoggerQuarantine(t *testing.T) {
	log, buf := setupTestLogger()
	ingestionLogger := NewIngestionLogger(log)

	ingestionLogger.LogQuarantine("EPL_2024_01_20_Arsenal_Chelsea", "football-data", "negative score")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "negative score", logEntry["reason"])
	assert.Equal(t, "warning", logEntry["level"])
}
