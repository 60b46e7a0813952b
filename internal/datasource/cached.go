package datasource

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/hot-streak/internal/metrics"
	"github.com/yourusername/hot-streak/internal/models"
)

// CacheTTLs sets per-entity cache lifetimes. Player identity changes
// rarely; game logs and season lines refresh daily.
type CacheTTLs struct {
	Player time.Duration
	Season time.Duration
	Game   time.Duration
}

// DefaultCacheTTLs returns the recommended cache lifetimes.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Player: 7 * 24 * time.Hour,
		Season: 24 * time.Hour,
		Game:   24 * time.Hour,
	}
}

// CachedDataSource decorates a DataSource with in-memory caching so
// repeated evaluations of the same player do not re-hit the API.
type CachedDataSource struct {
	source DataSource
	cache  *cache.Cache
	ttls   CacheTTLs
}

// NewCachedDataSource wraps a data source with an in-memory cache.
func NewCachedDataSource(source DataSource, ttls CacheTTLs) *CachedDataSource {
	return &CachedDataSource{
		source: source,
		cache:  cache.New(ttls.Game, 2*ttls.Game),
		ttls:   ttls,
	}
}

// Name returns the name of the underlying data source
func (c *CachedDataSource) Name() string {
	return c.source.Name()
}

// SearchPlayers is a pass-through: search queries are too varied to cache.
func (c *CachedDataSource) SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error) {
	return c.source.SearchPlayers(ctx, query, limit)
}

// GetPlayer retrieves one player, from cache when possible.
func (c *CachedDataSource) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	key := fmt.Sprintf("player:%d", playerID)
	if cached, found := c.cache.Get(key); found {
		metrics.CacheHitsTotal.Inc()
		return cached.(*models.Player), nil
	}
	metrics.CacheMissesTotal.Inc()

	player, err := c.source.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, player, c.ttls.Player)
	return player, nil
}

// GetSeasonAverage retrieves season averages, from cache when possible.
func (c *CachedDataSource) GetSeasonAverage(ctx context.Context, playerID, season int) (*models.SeasonAverage, error) {
	key := fmt.Sprintf("season:%d:%d", playerID, season)
	if cached, found := c.cache.Get(key); found {
		metrics.CacheHitsTotal.Inc()
		return cached.(*models.SeasonAverage), nil
	}
	metrics.CacheMissesTotal.Inc()

	avg, err := c.source.GetSeasonAverage(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, avg, c.ttls.Season)
	return avg, nil
}

// GetRecentGames retrieves game logs, from cache when possible.
func (c *CachedDataSource) GetRecentGames(ctx context.Context, playerID, season, limit int) (models.GameSeries, error) {
	key := fmt.Sprintf("games:%d:%d:%d", playerID, season, limit)
	if cached, found := c.cache.Get(key); found {
		metrics.CacheHitsTotal.Inc()
		return cached.(models.GameSeries), nil
	}
	metrics.CacheMissesTotal.Inc()

	series, err := c.source.GetRecentGames(ctx, playerID, season, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, series, c.ttls.Game)
	return series, nil
}

// GetCareerSeasons retrieves career history, from cache when possible.
func (c *CachedDataSource) GetCareerSeasons(ctx context.Context, playerID, fromSeason, toSeason int) ([]models.SeasonAverage, error) {
	key := fmt.Sprintf("career:%d:%d:%d", playerID, fromSeason, toSeason)
	if cached, found := c.cache.Get(key); found {
		metrics.CacheHitsTotal.Inc()
		return cached.([]models.SeasonAverage), nil
	}
	metrics.CacheMissesTotal.Inc()

	seasons, err := c.source.GetCareerSeasons(ctx, playerID, fromSeason, toSeason)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, seasons, c.ttls.Season)
	return seasons, nil
}
