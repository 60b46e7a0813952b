// Package repository provides PostgreSQL data access for players, game
// logs and generated picks.
package repository

import (
	"fmt"

	"github.com/yourusername/hot-streak/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Player  PlayerRepository
	GameLog GameLogRepository
	Pick    PickRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Player:  NewPostgresPlayerRepository(db),
		GameLog: NewPostgresGameLogRepository(db),
		Pick:    NewPostgresPickRepository(db),
	}, nil
}
