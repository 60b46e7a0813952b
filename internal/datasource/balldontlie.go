package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hot-streak/internal/metrics"
	"github.com/yourusername/hot-streak/internal/models"
)

// BallDontLieClient implements DataSource against the balldontlie.io API.
type BallDontLieClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	perPage    int
	logger     *logrus.Logger
}

// NewBallDontLieClient creates a client for the balldontlie.io stats API.
func NewBallDontLieClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, perPage int, logger *logrus.Logger) *BallDontLieClient {
	if baseURL == "" {
		baseURL = "https://api.balldontlie.io/v1"
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &BallDontLieClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		perPage:    perPage,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *BallDontLieClient) Name() string {
	return "balldontlie"
}

// rawPlayer is a player record as the API returns it.
type rawPlayer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// rawSeasonAverage is a season_averages record. The min field arrives
// as either a bare number or a string, so it is parsed lazily.
type rawSeasonAverage struct {
	Season      int             `json:"season"`
	GamesPlayed int             `json:"games_played"`
	Pts         float64         `json:"pts"`
	Reb         float64         `json:"reb"`
	Ast         float64         `json:"ast"`
	Min         json.RawMessage `json:"min"`
}

// rawGameStat is a stats record: one player's line in one game.
type rawGameStat struct {
	Pts    *float64    `json:"pts"`
	Reb    *float64    `json:"reb"`
	Ast    *float64    `json:"ast"`
	Fg3m   *float64    `json:"fg3m"`
	FgPct  *float64    `json:"fg_pct"`
	Fg3Pct *float64    `json:"fg3_pct"`
	FtPct  *float64    `json:"ft_pct"`
	Min    string      `json:"min"`
	Game   struct {
		Date string `json:"date"`
	} `json:"game"`
}

type apiEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// SearchPlayers finds players whose name matches the query.
func (c *BallDontLieClient) SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("search", query)
	params.Set("per_page", strconv.Itoa(limit))

	var raw []rawPlayer
	if err := c.getJSON(ctx, "players", params, &raw); err != nil {
		return nil, err
	}

	players := make([]models.Player, 0, len(raw))
	for _, p := range raw {
		players = append(players, normalizePlayer(p))
	}
	return players, nil
}

// GetPlayer retrieves one player by provider ID.
func (c *BallDontLieClient) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	var raw rawPlayer
	if err := c.getJSON(ctx, fmt.Sprintf("players/%d", playerID), nil, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, models.ErrPlayerNotFound
	}
	player := normalizePlayer(raw)
	return &player, nil
}

// GetSeasonAverage retrieves a player's per-game averages for one season.
func (c *BallDontLieClient) GetSeasonAverage(ctx context.Context, playerID, season int) (*models.SeasonAverage, error) {
	params := url.Values{}
	params.Add("player_ids[]", strconv.Itoa(playerID))
	params.Add("seasons[]", strconv.Itoa(season))

	var raw []rawSeasonAverage
	if err := c.getJSON(ctx, "season_averages", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, models.ErrNotFound
	}
	avg := normalizeSeasonAverage(raw[0])
	return &avg, nil
}

// GetRecentGames retrieves a player's most recent game logs for a season,
// in chronological order.
func (c *BallDontLieClient) GetRecentGames(ctx context.Context, playerID, season, limit int) (models.GameSeries, error) {
	if limit <= 0 || limit > c.perPage {
		limit = c.perPage
	}
	params := url.Values{}
	params.Add("player_ids[]", strconv.Itoa(playerID))
	params.Add("seasons[]", strconv.Itoa(season))
	params.Set("per_page", strconv.Itoa(c.perPage))

	var raw []rawGameStat
	if err := c.getJSON(ctx, "stats", params, &raw); err != nil {
		return nil, err
	}

	series := make(models.GameSeries, 0, len(raw))
	for _, g := range raw {
		gameLog, err := normalizeGame(g)
		if err != nil {
			c.logger.WithError(err).Debug("Skipping malformed game record")
			continue
		}
		series = append(series, gameLog)
	}

	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	if len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series, nil
}

// GetCareerSeasons retrieves season averages across a span of seasons.
// Seasons without data are skipped; the API requires one request per season.
func (c *BallDontLieClient) GetCareerSeasons(ctx context.Context, playerID, fromSeason, toSeason int) ([]models.SeasonAverage, error) {
	seasons := make([]models.SeasonAverage, 0, toSeason-fromSeason+1)
	for season := fromSeason; season <= toSeason; season++ {
		avg, err := c.GetSeasonAverage(ctx, playerID, season)
		if err != nil {
			if err == models.ErrNotFound {
				continue
			}
			return nil, fmt.Errorf("season %d: %w", season, err)
		}
		seasons = append(seasons, *avg)
	}
	return seasons, nil
}

func (c *BallDontLieClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Get(ctx, u, header)
	if err != nil {
		metrics.RecordAPIRequest("error")
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordAPIRequest(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data from %s: %w", endpoint, err)
	}
	return nil
}

func normalizePlayer(raw rawPlayer) models.Player {
	return models.Player{
		ID:       raw.ID,
		Name:     strings.TrimSpace(raw.FirstName + " " + raw.LastName),
		Team:     raw.Team.Abbreviation,
		Position: raw.Position,
	}
}

func normalizeSeasonAverage(raw rawSeasonAverage) models.SeasonAverage {
	return models.SeasonAverage{
		Season:      raw.Season,
		GamesPlayed: raw.GamesPlayed,
		Points:      raw.Pts,
		Rebounds:    raw.Reb,
		Assists:     raw.Ast,
		Minutes:     ParseMinutes(strings.Trim(string(raw.Min), `"`)),
	}
}

func normalizeGame(raw rawGameStat) (models.GameLog, error) {
	date, err := time.Parse("2006-01-02", strings.SplitN(raw.Game.Date, "T", 2)[0])
	if err != nil {
		return models.GameLog{}, fmt.Errorf("bad game date %q: %w", raw.Game.Date, err)
	}

	values := make(map[models.Stat]float64)
	assign := func(stat models.Stat, v *float64) {
		if v != nil {
			values[stat] = *v
		}
	}
	assign(models.StatPoints, raw.Pts)
	assign(models.StatRebounds, raw.Reb)
	assign(models.StatAssists, raw.Ast)
	assign(models.StatThrees, raw.Fg3m)
	assign(models.StatFGPct, raw.FgPct)
	assign(models.StatFG3Pct, raw.Fg3Pct)
	assign(models.StatFTPct, raw.FtPct)

	if raw.Min != "" {
		values[models.StatMinutes] = ParseMinutes(raw.Min)
	}

	return models.GameLog{Date: date, Values: values}, nil
}

// ParseMinutes converts the provider's minutes field to decimal minutes.
// The feed mixes plain numbers ("34"), decimals ("33.5") and clock form
// ("34:30"); anything unparseable degrades to 0 rather than failing.
func ParseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if parts := strings.SplitN(raw, ":", 2); len(parts) == 2 {
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.Atoi(parts[1])
		if errM == nil && errS == nil {
			return float64(minutes) + float64(seconds)/60.0
		}
	}
	return 0
}
