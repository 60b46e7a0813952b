package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hot-streak/internal/database"
	"github.com/yourusername/hot-streak/internal/models"
)

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL.
// Game logs are stored one row per (player, date, stat) so new stats
// never require a schema change.
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// InsertBatch stores a series of game logs for a player
func (r *PostgresGameLogRepository) InsertBatch(ctx context.Context, playerID int, series models.GameSeries) error {
	if len(series) == 0 {
		return nil
	}

	query := `
		INSERT INTO game_logs (player_id, game_date, stat, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, game_date, stat) DO UPDATE SET value = EXCLUDED.value
	`

	batch := &pgx.Batch{}
	for _, game := range series {
		for stat, value := range game.Values {
			batch.Queue(query, playerID, game.Date, string(stat), value)
		}
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert game log batch: %w", err)
		}
	}
	return nil
}

// GetSeries retrieves a player's game logs between two dates, oldest first
func (r *PostgresGameLogRepository) GetSeries(ctx context.Context, playerID int, start, end time.Time) (models.GameSeries, error) {
	query := `
		SELECT game_date, stat, value
		FROM game_logs
		WHERE player_id = $1 AND game_date >= $2 AND game_date <= $3
		ORDER BY game_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// GetRecent retrieves a player's most recent games, oldest first
func (r *PostgresGameLogRepository) GetRecent(ctx context.Context, playerID, limit int) (models.GameSeries, error) {
	query := `
		SELECT game_date, stat, value
		FROM game_logs
		WHERE player_id = $1 AND game_date >= (
			SELECT COALESCE(min(d), '1900-01-01'::date) FROM (
				SELECT DISTINCT game_date AS d FROM game_logs
				WHERE player_id = $1 ORDER BY d DESC LIMIT $2
			) recent
		)
		ORDER BY game_date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent game logs: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// scanSeries folds (date, stat, value) rows back into game logs. Rows
// arrive ordered by date, so a date change starts a new game.
func scanSeries(rows pgx.Rows) (models.GameSeries, error) {
	var series models.GameSeries
	for rows.Next() {
		var (
			date  time.Time
			stat  string
			value float64
		)
		if err := rows.Scan(&date, &stat, &value); err != nil {
			return nil, fmt.Errorf("failed to scan game log: %w", err)
		}

		if len(series) == 0 || !series[len(series)-1].Date.Equal(date) {
			series = append(series, models.GameLog{Date: date, Values: make(map[models.Stat]float64)})
		}
		series[len(series)-1].Values[models.Stat(stat)] = value
	}
	return series, rows.Err()
}
