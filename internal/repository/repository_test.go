package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// TestMatchRepositoryRoundTrip exercises create/get against a real database
func TestMatchRepositoryRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	match := &models.Match{
		ID:        uuid.New(),
		MatchKey:  "EPL_2024_01_20_Arsenal_Chelsea",
		Date:      time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC),
		Season:    "2023/24",
		League:    "EPL",
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		HomeScore: intPtr(2),
		AwayScore: intPtr(1),
		OddsClosing: &models.MatchOdds{
			Home: floatPtr(1.85),
			Draw: floatPtr(3.9),
			Away: floatPtr(4.2),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repos.Match.Create(ctx, match); err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	defer func() { _ = repos.Match.Delete(ctx, match.ID) }()

	retrieved, err := repos.Match.GetByKey(ctx, match.MatchKey)
	if err != nil {
		t.Fatalf("failed to retrieve match: %v", err)
	}

	if retrieved.ID != match.ID {
		t.Errorf("expected match ID %v, got %v", match.ID, retrieved.ID)
	}
	if retrieved.OddsClosing == nil || *retrieved.OddsClosing.Home != 1.85 {
		t.Errorf("expected closing home odds 1.85, got %+v", retrieved.OddsClosing)
	}
}

// TestMatchRepositoryUpsert verifies match_key conflict handling
func TestMatchRepositoryUpsert(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("failed to create repositories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	match := &models.Match{
		ID:       uuid.New(),
		MatchKey: "EPL_2024_02_03_Everton_Spurs",
		Date:     time.Date(2024, 2, 3, 15, 0, 0, 0, time.UTC),
		Season:   "2023/24",
		League:   "EPL",
		HomeTeam: "Everton",
		AwayTeam: "Tottenham",
	}

	inserted, err := repos.Match.Upsert(ctx, match)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if !inserted {
		t.Error("expected first upsert to insert")
	}
	defer func() { _ = repos.Match.Delete(ctx, match.ID) }()

	match.HomeScore = intPtr(1)
	match.AwayScore = intPtr(1)
	inserted, err = repos.Match.Upsert(ctx, match)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if inserted {
		t.Error("expected second upsert to update")
	}

	retrieved, err := repos.Match.GetByKey(ctx, match.MatchKey)
	if err != nil {
		t.Fatalf("failed to retrieve match: %v", err)
	}
	if retrieved.HomeScore == nil || *retrieved.HomeScore != 1 {
		t.Errorf("expected updated home score 1, got %v", retrieved.HomeScore)
	}
}

// TestNewRepositoriesRequiresDB verifies nil database rejection
func TestNewRepositoriesRequiresDB(t *testing.T) {
	if _, err := NewRepositories(nil); err == nil {
		t.Fatal("expected error for nil database")
	}
}
