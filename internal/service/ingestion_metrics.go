package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about a sync run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRecords     int
	Inserted         int
	Updated          int
	Quarantined      int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRecords = 0
	m.Inserted = 0
	m.Updated = 0
	m.Quarantined = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordInsert increments the inserted row count
func (m *IngestionMetrics) RecordInsert() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted++
}

// RecordUpdate increments the updated row count
func (m *IngestionMetrics) RecordUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updated++
}

// RecordQuarantine increments the quarantined record count
func (m *IngestionMetrics) RecordQuarantine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Quarantined++
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Snapshot returns a copy safe to read after the run
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IngestionMetrics{
		StartTime:        m.StartTime,
		Duration:         m.Duration,
		TotalRecords:     m.TotalRecords,
		Inserted:         m.Inserted,
		Updated:          m.Updated,
		Quarantined:      m.Quarantined,
		ValidationErrors: m.ValidationErrors,
		Errors:           m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Total=%d, Inserted=%d, Updated=%d, Quarantined=%d, Errors=%d, Duration=%v}",
		m.TotalRecords,
		m.Inserted,
		m.Updated,
		m.Quarantined,
		m.Errors,
		m.Duration,
	)
}
