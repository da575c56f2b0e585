package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/betlab/internal/datasource"
	"github.com/yourusername/betlab/internal/logger"
	"github.com/yourusername/betlab/internal/metrics"
	"github.com/yourusername/betlab/internal/models"
	"github.com/yourusername/betlab/internal/repository"
)

// IngestionService handles the data ingestion workflow: fetch fixtures,
// merge odds, validate at the boundary, quarantine rejects, upsert the rest.
type IngestionService struct {
	fixtures   datasource.DataSource
	odds       datasource.DataSource
	matchRepo  repository.MatchRepository
	quarantine repository.QuarantineRepository
	validator  *DataValidator
	merger     *DataMerger
	runMetrics *IngestionMetrics
	log        *logger.IngestionLogger
	batchSize  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	fixtures datasource.DataSource,
	odds datasource.DataSource,
	matchRepo repository.MatchRepository,
	quarantine repository.QuarantineRepository,
	validator *DataValidator,
	merger *DataMerger,
	log *logger.IngestionLogger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &IngestionService{
		fixtures:   fixtures,
		odds:       odds,
		matchRepo:  matchRepo,
		quarantine: quarantine,
		validator:  validator,
		merger:     merger,
		runMetrics: NewIngestionMetrics(),
		log:        log,
		batchSize:  batchSize,
	}
}

// SyncSeason fetches and ingests a full season
func (s *IngestionService) SyncSeason(ctx context.Context, season string) (*IngestionMetrics, error) {
	return s.sync(ctx, season, 0)
}

// SyncRecent re-ingests only fixtures inside the trailing window, keeping
// scores and closing odds fresh without refetching history
func (s *IngestionService) SyncRecent(ctx context.Context, season string, windowDays int) (*IngestionMetrics, error) {
	return s.sync(ctx, season, windowDays)
}

func (s *IngestionService) sync(ctx context.Context, season string, windowDays int) (*IngestionMetrics, error) {
	s.runMetrics.Reset()
	startTime := time.Now()

	records, err := s.fetchSource(ctx, s.fixtures, season)
	if err != nil {
		s.runMetrics.RecordError()
		return s.runMetrics, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	if windowDays > 0 {
		records = filterWindow(records, windowDays)
	}
	s.runMetrics.TotalRecords = len(records)

	// Validate at the boundary; rejects are quarantined, not repaired
	fixtures := make([]*models.Match, 0, len(records))
	for i := range records {
		record := &records[i]
		if reasons := s.validator.ValidateMatch(record); len(reasons) > 0 {
			s.quarantineRecord(ctx, record, s.fixtures.Name(), reasons)
			continue
		}

		match, err := s.merger.Normalize(record, s.fixtures.Name())
		if err != nil {
			s.runMetrics.RecordError()
			continue
		}
		fixtures = append(fixtures, match)
	}

	// Odds are best-effort: a failed odds fetch still leaves a usable store
	if s.odds != nil && s.odds.IsEnabled() {
		oddsRecords, err := s.fetchSource(ctx, s.odds, season)
		if err != nil {
			s.log.WithError(err).Warn("Odds fetch failed, continuing without odds")
		} else {
			valid := oddsRecords[:0]
			for i := range oddsRecords {
				record := &oddsRecords[i]
				if reasons := s.validator.ValidateMatch(record); len(reasons) > 0 {
					s.quarantineRecord(ctx, record, s.odds.Name(), reasons)
					continue
				}
				valid = append(valid, *record)
			}
			s.merger.Merge(fixtures, valid, s.odds.Name())
		}
	}

	s.persist(ctx, fixtures)

	// Newly seen teams widen the canonical set for the next run
	if teams, err := s.matchRepo.ListTeams(ctx); err == nil {
		s.merger.SetCanonical(teams)
		metrics.UpdateTeamsTracked(len(teams))
	}

	s.runMetrics.Duration = time.Since(startTime)
	snapshot := s.runMetrics.Snapshot()
	metrics.UpdateLastSyncQuarantined(snapshot.Quarantined)
	s.log.LogSyncRun(season, snapshot.Inserted, snapshot.Updated, snapshot.Quarantined, startTime)

	return s.runMetrics, nil
}

// fetchSource fetches one season from a source, recording fetch metrics
func (s *IngestionService) fetchSource(ctx context.Context, source datasource.DataSource, season string) ([]datasource.MatchData, error) {
	fetchStart := time.Now()
	records, err := source.FetchSeason(ctx, season)
	elapsed := time.Since(fetchStart)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordSourceFetch(source.Name(), status, elapsed.Seconds())

	if err == nil {
		s.log.LogSourceFetch(source.Name(), season, len(records), float64(elapsed.Milliseconds()))
	}

	return records, err
}

// persist upserts matches in batches
func (s *IngestionService) persist(ctx context.Context, matches []*models.Match) {
	for i := 0; i < len(matches); i += s.batchSize {
		end := i + s.batchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, match := range matches[i:end] {
			inserted, err := s.matchRepo.Upsert(ctx, match)
			if err != nil {
				s.runMetrics.RecordError()
				s.log.WithError(err).WithField("match_key", match.MatchKey).Error("Failed to upsert match")
				continue
			}
			if inserted {
				s.runMetrics.RecordInsert()
				metrics.RecordIngestedRow("inserted")
			} else {
				s.runMetrics.RecordUpdate()
				metrics.RecordIngestedRow("updated")
			}
		}
	}
}

// quarantineRecord parks an invalid record and records the rejection
func (s *IngestionService) quarantineRecord(ctx context.Context, record *datasource.MatchData, source string, reasons []string) {
	s.runMetrics.RecordQuarantine()
	metrics.RecordIngestedRow("quarantined")

	payload, err := json.Marshal(record)
	if err != nil {
		payload = []byte(fmt.Sprintf("%+v", record))
	}

	matchKey := BuildMatchKey("EPL", record.Date, record.HomeTeam, record.AwayTeam)
	reason := strings.Join(reasons, "; ")
	s.log.LogQuarantine(matchKey, source, reason)

	if s.quarantine == nil {
		return
	}
	err = s.quarantine.Insert(ctx, &models.QuarantinedRecord{
		MatchKey: matchKey,
		Source:   source,
		Payload:  payload,
		Reason:   reason,
	})
	if err != nil {
		s.runMetrics.RecordError()
		s.log.WithError(err).Error("Failed to quarantine record")
	}
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.runMetrics
}

// filterWindow keeps records dated inside the trailing window
func filterWindow(records []datasource.MatchData, windowDays int) []datasource.MatchData {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	kept := records[:0]
	for i := range records {
		if records[i].Date.After(cutoff) {
			kept = append(kept, records[i])
		}
	}
	return kept
}
