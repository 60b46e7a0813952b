package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/hot-streak/internal/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByTeam(ctx context.Context, team string) ([]*models.Player, error)
}

// GameLogRepository defines the interface for game log data access
type GameLogRepository interface {
	InsertBatch(ctx context.Context, playerID int, series models.GameSeries) error
	GetSeries(ctx context.Context, playerID int, start, end time.Time) (models.GameSeries, error)
	GetRecent(ctx context.Context, playerID, limit int) (models.GameSeries, error)
}

// PickRepository defines the interface for pick data access
type PickRepository interface {
	Create(ctx context.Context, pick *models.Pick) error
	CreateBatch(ctx context.Context, picks []models.Pick) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pick, error)
	GetByGameDate(ctx context.Context, gameDate time.Time) ([]*models.Pick, error)
	DeleteByGameDate(ctx context.Context, gameDate time.Time) (int64, error)
}
