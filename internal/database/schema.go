package database

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so startup can always run them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		team TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS game_logs (
		player_id INTEGER NOT NULL REFERENCES players(id),
		game_date DATE NOT NULL,
		stat TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (player_id, game_date, stat)
	)`,
	`CREATE TABLE IF NOT EXISTS picks (
		id UUID PRIMARY KEY,
		player_id INTEGER NOT NULL,
		player_name TEXT NOT NULL,
		team TEXT NOT NULL DEFAULT '',
		stat TEXT NOT NULL,
		threshold DOUBLE PRECISION NOT NULL,
		hit_probability DOUBLE PRECISION NOT NULL,
		sustainability DOUBLE PRECISION NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		fair_odds NUMERIC(8,2) NOT NULL,
		preset TEXT NOT NULL,
		career_phase TEXT NOT NULL,
		game_date DATE NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_picks_game_date ON picks (game_date)`,
	`CREATE INDEX IF NOT EXISTS idx_game_logs_player ON game_logs (player_id, game_date)`,
}

// EnsureSchema creates the tables the repositories depend on.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
