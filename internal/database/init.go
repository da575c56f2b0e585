package database

import (
	"context"
	"fmt"

	"github.com/yourusername/betlab/internal/config"
)

// schema holds the bootstrap DDL for the match store. Upserts key on
// match_key, so the unique constraint there is load-bearing.
const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY,
	match_key TEXT NOT NULL UNIQUE,
	match_date TIMESTAMPTZ NOT NULL,
	season TEXT NOT NULL,
	league TEXT NOT NULL,
	home_team TEXT NOT NULL,
	away_team TEXT NOT NULL,
	home_score INT,
	away_score INT,
	odds_opening JSONB,
	odds_closing JSONB,
	expected_goals JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_matches_season ON matches (season);
CREATE INDEX IF NOT EXISTS idx_matches_home_team ON matches (home_team);
CREATE INDEX IF NOT EXISTS idx_matches_away_team ON matches (away_team);
CREATE INDEX IF NOT EXISTS idx_matches_date ON matches (match_date DESC);

CREATE TABLE IF NOT EXISTS quarantined_matches (
	id BIGSERIAL PRIMARY KEY,
	match_key TEXT,
	source TEXT NOT NULL,
	payload JSONB NOT NULL,
	reason TEXT NOT NULL,
	quarantined_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
