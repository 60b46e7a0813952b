package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hot-streak/internal/database"
	"github.com/yourusername/hot-streak/internal/models"
)

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// Upsert inserts or refreshes a player record
func (r *PostgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, team, position, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, team = EXCLUDED.team,
		    position = EXCLUDED.position, updated_at = now()
	`

	_, err := r.db.GetPool().Exec(ctx, query, player.ID, player.Name, player.Team, player.Position)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

// GetByID retrieves a player by ID
func (r *PostgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, name, team, position FROM players WHERE id = $1`

	player := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.Team, &player.Position,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetByTeam retrieves all stored players on a team
func (r *PostgresPlayerRepository) GetByTeam(ctx context.Context, team string) ([]*models.Player, error) {
	query := `SELECT id, name, team, position FROM players WHERE team = $1 ORDER BY name`

	rows, err := r.db.GetPool().Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by team: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player := &models.Player{}
		if err := rows.Scan(&player.ID, &player.Name, &player.Team, &player.Position); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}
