package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/models"
)

// PostgresQuarantineRepository implements QuarantineRepository for PostgreSQL
type PostgresQuarantineRepository struct {
	db *database.DB
}

// NewPostgresQuarantineRepository creates a new quarantine repository
func NewPostgresQuarantineRepository(db *database.DB) QuarantineRepository {
	return &PostgresQuarantineRepository{db: db}
}

// Insert stores a rejected record
func (r *PostgresQuarantineRepository) Insert(ctx context.Context, record *models.QuarantinedRecord) error {
	query := `
		INSERT INTO quarantined_matches (match_key, source, payload, reason)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.MatchKey, record.Source, record.Payload, record.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quarantined record: %w", err)
	}

	return nil
}

// CountSince returns the number of records quarantined since the given time
func (r *PostgresQuarantineRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx,
		`SELECT COUNT(*) FROM quarantined_matches WHERE quarantined_at >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quarantined records: %w", err)
	}

	return count, nil
}
