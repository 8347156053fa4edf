// Package repository loads the historical finished-match table the
// statistics aggregator consumes, from PostgreSQL or from a CSV
// export.
package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/odds-falcon/internal/database"
	"github.com/yourusername/odds-falcon/internal/models"
)

// MatchSource yields the full historical finished-match table
type MatchSource interface {
	ListMatches(ctx context.Context) ([]models.MatchRecord, error)
}

// PostgresMatchRepository implements MatchSource for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// ListMatches returns every finished match, oldest first. Missing
// numeric columns come back as zero.
func (r *PostgresMatchRepository) ListMatches(ctx context.Context) ([]models.MatchRecord, error) {
	query := `
		SELECT league, match_date, home_team, away_team,
		       COALESCE(home_goals, 0), COALESCE(away_goals, 0),
		       COALESCE(home_corners, 0), COALESCE(away_corners, 0),
		       COALESCE(home_shots, 0), COALESCE(away_shots, 0),
		       COALESCE(home_shots_on_target, 0), COALESCE(away_shots_on_target, 0),
		       COALESCE(home_yellow, 0), COALESCE(away_yellow, 0)
		FROM historical_matches
		ORDER BY match_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical matches: %w", err)
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var rec models.MatchRecord
		if err := rows.Scan(
			&rec.League, &rec.Date, &rec.HomeTeam, &rec.AwayTeam,
			&rec.HomeGoals, &rec.AwayGoals,
			&rec.HomeCorners, &rec.AwayCorners,
			&rec.HomeShots, &rec.AwayShots,
			&rec.HomeShotsOnTarget, &rec.AwayShotsOnTarget,
			&rec.HomeYellow, &rec.AwayYellow,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}

	return records, nil
}
