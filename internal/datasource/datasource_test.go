package datasource

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hot-streak/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*BallDontLieClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 1000
	cfg.MaxRetries = 0
	httpClient := NewRateLimitedHTTPClient(cfg, log.New(io.Discard, "", 0))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewBallDontLieClient(httpClient, server.URL, "test-key", 100, logger), server
}

func TestSearchPlayers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "curry", r.URL.Query().Get("search"))
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[
			{"id":115,"first_name":"Stephen","last_name":"Curry","position":"G","team":{"abbreviation":"GSW"}},
			{"id":116,"first_name":"Seth","last_name":"Curry","position":"G","team":{"abbreviation":"CHA"}}
		]}`)
	})
	client, _ := newTestClient(t, handler)

	players, err := client.SearchPlayers(context.Background(), "curry", 10)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, 115, players[0].ID)
	assert.Equal(t, "Stephen Curry", players[0].Name)
	assert.Equal(t, "GSW", players[0].Team)
}

func TestGetPlayerNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.GetPlayer(context.Background(), 999)
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)
}

func TestGetSeasonAverageStringMinutes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/season_averages", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"season":2024,"games_played":74,"pts":26.4,"reb":4.5,"ast":5.1,"min":"32:42"}]}`)
	})
	client, _ := newTestClient(t, handler)

	avg, err := client.GetSeasonAverage(context.Background(), 115, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, avg.Season)
	assert.Equal(t, 74, avg.GamesPlayed)
	assert.Equal(t, 26.4, avg.Points)
	assert.InDelta(t, 32.7, avg.Minutes, 1e-9)
}

func TestGetSeasonAverageNumericMinutes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"season":2023,"games_played":70,"pts":24.0,"reb":4.0,"ast":6.0,"min":33.5}]}`)
	})
	client, _ := newTestClient(t, handler)

	avg, err := client.GetSeasonAverage(context.Background(), 115, 2023)
	require.NoError(t, err)
	assert.Equal(t, 33.5, avg.Minutes)
}

func TestGetSeasonAverageEmpty(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.GetSeasonAverage(context.Background(), 115, 1999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetRecentGamesChronological(t *testing.T) {
	// API returns games newest-first; the client must reorder oldest-first.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		fmt.Fprint(w, `{"data":[
			{"pts":31,"reb":5,"ast":7,"fg3m":6,"min":"36:12","game":{"date":"2025-01-15"}},
			{"pts":22,"reb":4,"ast":5,"fg3m":3,"min":"34","game":{"date":"2025-01-13T00:00:00.000Z"}},
			{"pts":18,"reb":3,"ast":9,"fg3m":2,"min":"29:48","game":{"date":"2025-01-11"}}
		]}`)
	})
	client, _ := newTestClient(t, handler)

	series, err := client.GetRecentGames(context.Background(), 115, 2024, 50)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.True(t, series[1].Date.Before(series[2].Date))

	pts, ok := series.Values(models.StatPoints)
	require.True(t, ok)
	assert.Equal(t, []float64{18, 22, 31}, pts)

	assert.InDelta(t, 29.8, series[0].Values[models.StatMinutes], 1e-9)
	assert.Equal(t, 34.0, series[1].Values[models.StatMinutes])
}

func TestGetRecentGamesLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"pts":10,"min":"30","game":{"date":"2025-01-01"}},
			{"pts":20,"min":"30","game":{"date":"2025-01-03"}},
			{"pts":30,"min":"30","game":{"date":"2025-01-05"}}
		]}`)
	})
	client, _ := newTestClient(t, handler)

	series, err := client.GetRecentGames(context.Background(), 115, 2024, 2)
	require.NoError(t, err)
	require.Len(t, series, 2)

	// Keeps the most recent games after sorting.
	pts, _ := series.Values(models.StatPoints)
	assert.Equal(t, []float64{20, 30}, pts)
}

func TestGetRecentGamesSkipsMalformed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"pts":10,"min":"30","game":{"date":"not-a-date"}},
			{"pts":20,"min":"30","game":{"date":"2025-01-03"}}
		]}`)
	})
	client, _ := newTestClient(t, handler)

	series, err := client.GetRecentGames(context.Background(), 115, 2024, 50)
	require.NoError(t, err)
	assert.Len(t, series, 1)
}

func TestGetCareerSeasonsSkipsMissing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("seasons[]")
		if season == "2021" {
			fmt.Fprint(w, `{"data":[]}`)
			return
		}
		fmt.Fprintf(w, `{"data":[{"season":%s,"games_played":60,"pts":20.0,"reb":5.0,"ast":4.0,"min":"32:00"}]}`, season)
	})
	client, _ := newTestClient(t, handler)

	seasons, err := client.GetCareerSeasons(context.Background(), 115, 2020, 2022)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, 2020, seasons[0].Season)
	assert.Equal(t, 2022, seasons[1].Season)
}

func TestGetJSONServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.SearchPlayers(context.Background(), "nobody", 5)
	assert.Error(t, err)
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain integer", "34", 34},
		{"decimal", "33.5", 33.5},
		{"clock form", "34:30", 34.5},
		{"clock zero seconds", "28:00", 28},
		{"empty", "", 0},
		{"whitespace", "  ", 0},
		{"garbage", "DNP", 0},
		{"bad clock", "34:xx", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMinutes(tt.raw)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseMinutes(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// stubDataSource counts calls so cache behavior is observable.
type stubDataSource struct {
	playerCalls int64
	seasonCalls int64
	gamesCalls  int64
}

func (s *stubDataSource) Name() string { return "stub" }

func (s *stubDataSource) SearchPlayers(ctx context.Context, query string, limit int) ([]models.Player, error) {
	return []models.Player{{ID: 1, Name: "Stub Player"}}, nil
}

func (s *stubDataSource) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	atomic.AddInt64(&s.playerCalls, 1)
	return &models.Player{ID: playerID, Name: "Stub Player"}, nil
}

func (s *stubDataSource) GetSeasonAverage(ctx context.Context, playerID, season int) (*models.SeasonAverage, error) {
	atomic.AddInt64(&s.seasonCalls, 1)
	return &models.SeasonAverage{Season: season, GamesPlayed: 70, Points: 20}, nil
}

func (s *stubDataSource) GetRecentGames(ctx context.Context, playerID, season, limit int) (models.GameSeries, error) {
	atomic.AddInt64(&s.gamesCalls, 1)
	return models.GameSeries{
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Values: map[models.Stat]float64{models.StatPoints: 20}},
	}, nil
}

func (s *stubDataSource) GetCareerSeasons(ctx context.Context, playerID, fromSeason, toSeason int) ([]models.SeasonAverage, error) {
	return []models.SeasonAverage{{Season: fromSeason, Points: 20}}, nil
}

func TestCachedDataSource(t *testing.T) {
	stub := &stubDataSource{}
	cached := NewCachedDataSource(stub, DefaultCacheTTLs())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		player, err := cached.GetPlayer(ctx, 115)
		require.NoError(t, err)
		assert.Equal(t, 115, player.ID)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.playerCalls))

	for i := 0; i < 3; i++ {
		_, err := cached.GetSeasonAverage(ctx, 115, 2024)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.seasonCalls))

	// Distinct keys miss independently.
	_, err := cached.GetSeasonAverage(ctx, 115, 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&stub.seasonCalls))

	_, err = cached.GetRecentGames(ctx, 115, 2024, 20)
	require.NoError(t, err)
	_, err = cached.GetRecentGames(ctx, 115, 2024, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.gamesCalls))

	assert.Equal(t, "stub", cached.Name())
}
