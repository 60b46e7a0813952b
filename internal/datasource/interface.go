package datasource

import (
	"context"

	"github.com/yourusername/hot-streak/internal/models"
)

// DataSource defines the interface for fetching NBA player data from an
// external stats provider. Implementations return normalized internal
// models; raw provider payloads never leave this package.
type DataSource interface {
	// SearchPlayers finds players whose name matches the query.
	SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error)

	// GetPlayer retrieves one player by provider ID.
	GetPlayer(ctx context.Context, playerID int) (*models.Player, error)

	// GetSeasonAverage retrieves a player's per-game averages for one season.
	GetSeasonAverage(ctx context.Context, playerID, season int) (*models.SeasonAverage, error)

	// GetRecentGames retrieves a player's most recent game logs for a
	// season, returned in chronological order (oldest first).
	GetRecentGames(ctx context.Context, playerID, season, limit int) (models.GameSeries, error)

	// GetCareerSeasons retrieves season averages across a span of seasons,
	// skipping seasons the player did not appear in.
	GetCareerSeasons(ctx context.Context, playerID, fromSeason, toSeason int) ([]models.SeasonAverage, error)

	// Name returns the name of the data source.
	Name() string
}
