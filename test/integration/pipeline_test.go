// Integration test for the full pipeline: HTTP provider -> cached data
// source -> evaluation engine -> pick service.
package integration

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hot-streak/internal/config"
	"github.com/yourusername/hot-streak/internal/datasource"
	"github.com/yourusername/hot-streak/internal/engine"
	"github.com/yourusername/hot-streak/internal/models"
	"github.com/yourusername/hot-streak/internal/service"
	"github.com/yourusername/hot-streak/test/helpers"
)

// newProvider serves a single star player: 24 games around 30 points and
// five seasons of steady scoring.
func newProvider(t *testing.T, requestCount *int64) *httptest.Server {
	t.Helper()

	points := make([]float64, 24)
	for i := range points {
		points[i] = 28 + float64(i%5)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requestCount, 1)
		switch {
		case r.URL.Path == "/players/115":
			fmt.Fprintf(w, `{"data":%s}`, helpers.PlayerJSON(115, "Stephen", "Curry", "GSW"))
		case r.URL.Path == "/stats":
			fmt.Fprint(w, helpers.GameStatsJSON(points))
		case r.URL.Path == "/season_averages":
			season, _ := strconv.Atoi(r.URL.Query().Get("seasons[]"))
			if season < 2020 || season > 2024 {
				fmt.Fprint(w, `{"data":[]}`)
				return
			}
			fmt.Fprint(w, helpers.SeasonAverageJSON(season, 22+3*float64(season-2020)))
		default:
			http.NotFound(w, r)
		}
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newPipeline(t *testing.T, baseURL string) *service.PickService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = 1000
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, log.New(io.Discard, "", 0))

	var source datasource.DataSource = datasource.NewBallDontLieClient(httpClient, baseURL, "test-key", 100, logger)
	source = datasource.NewCachedDataSource(source, datasource.DefaultCacheTTLs())

	evaluator, err := engine.NewEvaluator(engine.DefaultParams())
	require.NoError(t, err)

	picksCfg := config.PicksConfig{
		Preset:           "default",
		TopN:             5,
		MinMinutesLast5:  18,
		MinSampleGames:   2,
		MinProbability:   0.77,
		RequireDistinct:  true,
		MinConfidenceGap: 0.05,
	}
	return service.NewPickService(source, evaluator, picksCfg, logger)
}

func TestPickPipelineEndToEnd(t *testing.T) {
	var requests int64
	server := newProvider(t, &requests)
	svc := newPipeline(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	picks, err := svc.GeneratePicks(ctx, []int{115}, 2024)
	require.NoError(t, err)
	require.NotEmpty(t, picks, "a 30-point scorer must clear some default lines")

	for _, pick := range picks {
		assert.Equal(t, "Stephen Curry", pick.PlayerName)
		assert.Equal(t, "GSW", pick.Team)
		assert.GreaterOrEqual(t, pick.HitProbability, 0.77)
		assert.NotEqual(t, models.PhaseUnknown, pick.Phase)
		assert.False(t, pick.FairOdds.IsZero())
	}

	// Second run hits the cache instead of the provider.
	before := atomic.LoadInt64(&requests)
	_, err = svc.GeneratePicks(ctx, []int{115}, 2024)
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt64(&requests), "second run should be fully cached")
}

func TestPickPipelineUnknownPlayer(t *testing.T) {
	var requests int64
	server := newProvider(t, &requests)
	svc := newPipeline(t, server.URL)

	picks, err := svc.GeneratePicks(context.Background(), []int{999}, 2024)
	require.NoError(t, err)
	assert.Empty(t, picks, "unknown players are skipped, not fatal")
}
