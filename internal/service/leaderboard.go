package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/betlab/internal/analysis"
	"github.com/yourusername/betlab/internal/metrics"
	"github.com/yourusername/betlab/internal/repository"
)

// LeaderboardEntry summarizes one team's analyzed performance
type LeaderboardEntry struct {
	Team          string  `json:"team"`
	MatchesPlayed int     `json:"matches_played"`
	ROIHome       float64 `json:"roi_home"`
	ROIAway       float64 `json:"roi_away"`
	BestROI       float64 `json:"best_roi"`
	Over25Rate    float64 `json:"over_2_5_rate"`
	Confidence    float64 `json:"confidence"`
	Failed        bool    `json:"failed,omitempty"`
}

// LeaderboardService fans team analysis out over a bounded worker pool and
// ranks the results by best venue ROI. A team whose matches cannot be loaded
// contributes a zero-valued entry rather than sinking the whole board.
type LeaderboardService struct {
	matchRepo repository.MatchRepository
	analyzer  *analysis.Analyzer
	logger    *logrus.Logger
	workers   int
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(matchRepo repository.MatchRepository, analyzer *analysis.Analyzer, logger *logrus.Logger, workers int) *LeaderboardService {
	if workers <= 0 {
		workers = 4
	}

	return &LeaderboardService{
		matchRepo: matchRepo,
		analyzer:  analyzer,
		logger:    logger,
		workers:   workers,
	}
}

// Build analyzes every tracked team for a season and ranks them
func (s *LeaderboardService) Build(ctx context.Context, season string) ([]LeaderboardEntry, error) {
	startTime := time.Now()

	teams, err := s.matchRepo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(teams))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = s.analyzeTeam(ctx, teams[i], season)
			}
		}()
	}

	for i := range teams {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].BestROI > entries[j].BestROI
	})

	metrics.RecordLeaderboardRun(time.Since(startTime).Seconds())
	return entries, nil
}

func (s *LeaderboardService) analyzeTeam(ctx context.Context, team, season string) LeaderboardEntry {
	matches, err := s.matchRepo.GetByTeam(ctx, team)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("team", team).Warn("Leaderboard entry failed")
		}
		return LeaderboardEntry{Team: team, Failed: true}
	}

	teamAnalysis := s.analyzer.AnalyzeTeam(team, season, matches)
	report := analysis.Synthesize(teamAnalysis)

	best := teamAnalysis.Betting.ROIHome
	if teamAnalysis.Betting.ROIAway > best {
		best = teamAnalysis.Betting.ROIAway
	}

	return LeaderboardEntry{
		Team:          team,
		MatchesPlayed: teamAnalysis.MatchesPlayed,
		ROIHome:       teamAnalysis.Betting.ROIHome,
		ROIAway:       teamAnalysis.Betting.ROIAway,
		BestROI:       best,
		Over25Rate:    teamAnalysis.Betting.Over25Rate,
		Confidence:    report.OverallConfidence,
	}
}
