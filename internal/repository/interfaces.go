package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/betlab/internal/models"
)

// MatchRepository defines the interface for match data access.
// List queries return matches ordered newest first.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	Upsert(ctx context.Context, match *models.Match) (inserted bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetByKey(ctx context.Context, matchKey string) (*models.Match, error)
	GetByTeam(ctx context.Context, team string) ([]*models.Match, error)
	GetBySeason(ctx context.Context, season string) ([]*models.Match, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Match, error)
	ListTeams(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuarantineRepository stores records rejected at the validation boundary
type QuarantineRepository interface {
	Insert(ctx context.Context, record *models.QuarantinedRecord) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}
