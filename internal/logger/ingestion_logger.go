// Package logger provides ingestion-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// IngestionLogger provides dedicated logging for the data pipeline.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogSourceFetch logs a completed fetch from an external data source.
func (il *IngestionLogger) LogSourceFetch(source, season string, rowsFetched int, durationMs float64) {
	il.WithFields(logrus.Fields{
		"source":       source,
		"season":       season,
		"rows_fetched": rowsFetched,
		"duration_ms":  durationMs,
	}).Info("Data source fetch completed")
}

// LogSyncRun logs the summary of an ingestion sync run.
func (il *IngestionLogger) LogSyncRun(season string, inserted, updated, quarantined int, startedAt time.Time) {
	il.WithFields(logrus.Fields{
		"season":      season,
		"inserted":    inserted,
		"updated":     updated,
		"quarantined": quarantined,
		"duration_ms": float64(time.Since(startedAt).Milliseconds()),
	}).Info("Ingestion sync completed")
}

// LogQuarantine logs a record rejected at the validation boundary.
func (il *IngestionLogger) LogQuarantine(matchKey, source, reason string) {
	il.WithFields(logrus.Fields{
		"match_key": matchKey,
		"source":    source,
		"reason":    reason,
	}).Warn("Record quarantined")
}

// LogResolverMiss logs a team name that could not be resolved.
func (il *IngestionLogger) LogResolverMiss(input, source string) {
	il.WithFields(logrus.Fields{
		"input":  input,
		"source": source,
	}).Warn("Team name resolution failed")
}
