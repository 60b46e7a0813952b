package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hot-streak/internal/database"
	"github.com/yourusername/hot-streak/internal/models"
)

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

const pickColumns = `id, player_id, player_name, team, stat, threshold, hit_probability,
	sustainability, confidence, fair_odds, preset, career_phase, game_date, generated_at`

// Create inserts a new pick
func (r *PostgresPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (` + pickColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		pick.ID, pick.PlayerID, pick.PlayerName, pick.Team, pick.Stat, pick.Threshold,
		pick.HitProbability, pick.Sustainability, pick.Confidence, pick.FairOdds,
		pick.Preset, pick.Phase, pick.GameDate, pick.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pick: %w", err)
	}
	return nil
}

// CreateBatch inserts a batch of picks atomically. A duplicate or
// constraint failure on any row rolls back the whole refresh.
func (r *PostgresPickRepository) CreateBatch(ctx context.Context, picks []models.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	query := `
		INSERT INTO picks (` + pickColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range picks {
			p := &picks[i]
			batch.Queue(query,
				p.ID, p.PlayerID, p.PlayerName, p.Team, p.Stat, p.Threshold,
				p.HitProbability, p.Sustainability, p.Confidence, p.FairOdds,
				p.Preset, p.Phase, p.GameDate, p.GeneratedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range picks {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert pick batch: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a pick by ID
func (r *PostgresPickRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE id = $1`

	pick := &models.Pick{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&pick.ID, &pick.PlayerID, &pick.PlayerName, &pick.Team, &pick.Stat, &pick.Threshold,
		&pick.HitProbability, &pick.Sustainability, &pick.Confidence, &pick.FairOdds,
		&pick.Preset, &pick.Phase, &pick.GameDate, &pick.GeneratedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return pick, nil
}

// GetByGameDate retrieves all picks generated for a game date, best first
func (r *PostgresPickRepository) GetByGameDate(ctx context.Context, gameDate time.Time) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE game_date = $1 ORDER BY confidence DESC`

	rows, err := r.db.GetPool().Query(ctx, query, gameDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks by game date: %w", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		pick := &models.Pick{}
		err := rows.Scan(
			&pick.ID, &pick.PlayerID, &pick.PlayerName, &pick.Team, &pick.Stat, &pick.Threshold,
			&pick.HitProbability, &pick.Sustainability, &pick.Confidence, &pick.FairOdds,
			&pick.Preset, &pick.Phase, &pick.GameDate, &pick.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, pick)
	}
	return picks, rows.Err()
}

// DeleteByGameDate removes all picks for a game date, returning the count
func (r *PostgresPickRepository) DeleteByGameDate(ctx context.Context, gameDate time.Time) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx, `DELETE FROM picks WHERE game_date = $1`, gameDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete picks by game date: %w", err)
	}
	return tag.RowsAffected(), nil
}
