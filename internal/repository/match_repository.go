package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/models"
)

const errScanMatch = "failed to scan match: %w"

const matchColumns = `id, match_key, match_date, season, league, home_team, away_team,
	       home_score, away_score, odds_opening, odds_closing, expected_goals,
	       created_at, updated_at`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Create inserts a new match
func (r *PostgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, match_key, match_date, season, league, home_team, away_team,
		                     home_score, away_score, odds_opening, odds_closing, expected_goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	opening, closing, xg, err := marshalMatchJSON(match)
	if err != nil {
		return err
	}

	_, err = r.db.GetPool().Exec(ctx, query,
		match.ID, match.MatchKey, match.Date, match.Season, match.League,
		match.HomeTeam, match.AwayTeam, match.HomeScore, match.AwayScore,
		opening, closing, xg,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// Upsert inserts a match or refreshes an existing one keyed on match_key.
// Returns true when a new row was inserted.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, match *models.Match) (bool, error) {
	query := `
		INSERT INTO matches (id, match_key, match_date, season, league, home_team, away_team,
		                     home_score, away_score, odds_opening, odds_closing, expected_goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (match_key) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			odds_opening = COALESCE(EXCLUDED.odds_opening, matches.odds_opening),
			odds_closing = COALESCE(EXCLUDED.odds_closing, matches.odds_closing),
			expected_goals = COALESCE(EXCLUDED.expected_goals, matches.expected_goals),
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	opening, closing, xg, err := marshalMatchJSON(match)
	if err != nil {
		return false, err
	}

	var inserted bool
	err = r.db.GetPool().QueryRow(ctx, query,
		match.ID, match.MatchKey, match.Date, match.Season, match.League,
		match.HomeTeam, match.AwayTeam, match.HomeScore, match.AwayScore,
		opening, closing, xg,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert match: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves a match by ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)
	return r.queryOne(ctx, query, id)
}

// GetByKey retrieves a match by its natural key
func (r *PostgresMatchRepository) GetByKey(ctx context.Context, matchKey string) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE match_key = $1`, matchColumns)
	return r.queryOne(ctx, query, matchKey)
}

// GetByTeam retrieves all matches involving a team, newest first
func (r *PostgresMatchRepository) GetByTeam(ctx context.Context, team string) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE home_team = $1 OR away_team = $1
		ORDER BY match_date DESC
	`, matchColumns)
	return r.queryMany(ctx, query, team)
}

// GetBySeason retrieves all matches in a season, newest first
func (r *PostgresMatchRepository) GetBySeason(ctx context.Context, season string) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE season = $1
		ORDER BY match_date DESC
	`, matchColumns)
	return r.queryMany(ctx, query, season)
}

// GetByDateRange retrieves matches within a date range, newest first
func (r *PostgresMatchRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE match_date >= $1 AND match_date <= $2
		ORDER BY match_date DESC
	`, matchColumns)
	return r.queryMany(ctx, query, start, end)
}

// ListTeams returns the distinct canonical team names in the store
func (r *PostgresMatchRepository) ListTeams(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT team FROM (
			SELECT home_team AS team FROM matches
			UNION
			SELECT away_team AS team FROM matches
		) names
		ORDER BY team ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("failed to scan team name: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Delete removes a match
func (r *PostgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *PostgresMatchRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*models.Match, error) {
	row := r.db.GetPool().QueryRow(ctx, query, args...)
	match, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (r *PostgresMatchRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	match := &models.Match{}
	var opening, closing, xg []byte

	err := row.Scan(
		&match.ID, &match.MatchKey, &match.Date, &match.Season, &match.League,
		&match.HomeTeam, &match.AwayTeam, &match.HomeScore, &match.AwayScore,
		&opening, &closing, &xg, &match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalMatchJSON(opening, &match.OddsOpening); err != nil {
		return nil, err
	}
	if err := unmarshalMatchJSON(closing, &match.OddsClosing); err != nil {
		return nil, err
	}
	if err := unmarshalMatchJSON(xg, &match.XG); err != nil {
		return nil, err
	}

	return match, nil
}

func marshalMatchJSON(match *models.Match) (opening, closing, xg []byte, err error) {
	if match.OddsOpening != nil {
		if opening, err = json.Marshal(match.OddsOpening); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal opening odds: %w", err)
		}
	}
	if match.OddsClosing != nil {
		if closing, err = json.Marshal(match.OddsClosing); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal closing odds: %w", err)
		}
	}
	if match.XG != nil {
		if xg, err = json.Marshal(match.XG); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal expected goals: %w", err)
		}
	}
	return opening, closing, xg, nil
}

func unmarshalMatchJSON[T any](data []byte, target **T) error {
	if len(data) == 0 {
		return nil
	}
	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to unmarshal match JSON: %w", err)
	}
	*target = value
	return nil
}
