// Package main provides the entry point for the single-player prediction CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hot-streak/internal/config"
	"github.com/yourusername/hot-streak/internal/datasource"
	"github.com/yourusername/hot-streak/internal/engine"
	"github.com/yourusername/hot-streak/internal/export"
	"github.com/yourusername/hot-streak/internal/league"
	applogger "github.com/yourusername/hot-streak/internal/logger"
	"github.com/yourusername/hot-streak/internal/models"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		playerName = flag.String("player", "", "Player name to search for")
		playerID   = flag.Int("player-id", 0, "Player ID (skips the name search)")
		season     = flag.Int("season", time.Now().Year()-1, "Season year")
		limit      = flag.Int("limit", 100, "Maximum recent games to analyze")
		output     = flag.String("output", "", "Output path for results (optional)")
		format     = flag.String("format", "json", "Output format: json or csv")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	if *playerName == "" && *playerID == 0 {
		logger.Fatal("Either -player or -player-id is required")
	}

	params, err := cfg.Model.EngineParams()
	if err != nil {
		logger.Fatalf("Invalid model configuration: %v", err)
	}
	thresholds, err := cfg.Model.ThresholdMap()
	if err != nil {
		logger.Fatalf("Invalid threshold configuration: %v", err)
	}

	evaluator, err := engine.NewEvaluator(params, engine.WithLeague(league.NewRegistry(league.DefaultLoader)))
	if err != nil {
		logger.Fatalf("Failed to create evaluator: %v", err)
	}

	source := buildDataSource(cfg, logger)
	ctx := context.Background()

	player := resolvePlayer(ctx, source, *playerName, *playerID, logger)

	series, err := source.GetRecentGames(ctx, player.ID, *season, *limit)
	if err != nil {
		logger.Fatalf("Failed to fetch recent games: %v", err)
	}
	seasons, err := source.GetCareerSeasons(ctx, player.ID, *season-19, *season)
	if err != nil {
		logger.Fatalf("Failed to fetch career seasons: %v", err)
	}

	evaluation, err := evaluator.Evaluate(series, seasons, thresholds)
	if err != nil {
		logger.Fatalf("Evaluation failed: %v", err)
	}

	fmt.Print(renderReport(player, *season, series, evaluation, params.WindowSize))

	if *output != "" {
		if err := writeOutput(*output, *format, player, *season, evaluation); err != nil {
			logger.Fatalf("Failed to write output: %v", err)
		}
		logger.WithField("path", *output).Info("Results written")
	}
}

func buildDataSource(cfg *config.Config, logger *logrus.Logger) datasource.DataSource {
	httpLogger := log.New(os.Stdout, "nba-http: ", log.LstdFlags)
	httpCfg := datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.API.MaxRetries,
		RetryWaitMin:      500 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.API.RateLimit,
		CircuitBreakerMax: 5,
	}
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, httpLogger)

	var source datasource.DataSource = datasource.NewBallDontLieClient(
		httpClient, cfg.API.BaseURL, cfg.API.Key, cfg.API.PerPage, logger,
	)
	if cfg.Cache.Enabled {
		source = datasource.NewCachedDataSource(source, datasource.CacheTTLs{
			Player: cfg.Cache.PlayerTTL,
			Season: cfg.Cache.SeasonTTL,
			Game:   cfg.Cache.GameTTL,
		})
	}
	return source
}

func resolvePlayer(ctx context.Context, source datasource.DataSource, name string, id int, logger *logrus.Logger) *models.Player {
	if id != 0 {
		player, err := source.GetPlayer(ctx, id)
		if err != nil {
			logger.Fatalf("Failed to fetch player %d: %v", id, err)
		}
		return player
	}

	matches, err := source.SearchPlayers(ctx, name, 5)
	if err != nil {
		logger.Fatalf("Player search failed: %v", err)
	}
	if len(matches) == 0 {
		logger.Fatalf("No players found matching %q", name)
	}
	if len(matches) > 1 {
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%s (%d)", m.Name, m.ID))
		}
		logger.WithField("matches", strings.Join(names, ", ")).Info("Multiple matches, using first")
	}
	return &matches[0]
}

func renderReport(player *models.Player, season int, series models.GameSeries, evaluation *models.Evaluation, window int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Regression Analysis: %s (%s)\n", player.Name, player.Team))
	b.WriteString("=====================================\n")
	b.WriteString(fmt.Sprintf("Season: %d | Games analyzed: %d | Career phase: %s\n",
		season, evaluation.NGames, evaluation.Phase))
	b.WriteString(fmt.Sprintf("Fatigue z-score: %.2f (regression risk %.2f)\n",
		evaluation.Fatigue.ZScore, evaluation.Fatigue.RegressionRisk))
	if evaluation.Minutes.DecliningTrend {
		b.WriteString(fmt.Sprintf("Minutes declining: slope %.2f/game (p=%.3f)\n",
			evaluation.Minutes.TrendSlope, evaluation.Minutes.PValue))
	}
	if points, ok := series.Sorted().Values(models.StatPoints); ok {
		steady := engine.Consistency(points)
		momentum := engine.Momentum(points, window)
		b.WriteString(fmt.Sprintf("Scoring consistency: %.2f (CV %.2f, median %.1f)\n",
			steady.Consistency, steady.CV, steady.Median))
		b.WriteString(fmt.Sprintf("Momentum: %s (score %.2f, slope %.2f/game)\n",
			momentum.Trend, momentum.MomentumScore, momentum.Slope))
	}

	stats := make([]models.Stat, 0, len(evaluation.Results))
	for stat := range evaluation.Results {
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })

	for _, stat := range stats {
		result := evaluation.Results[stat]
		if result.Outcome != models.StatOK {
			b.WriteString(fmt.Sprintf("\n%s: %s\n", strings.ToUpper(string(stat)), result.Outcome))
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s\n", strings.ToUpper(string(stat))))

		thresholds := make([]float64, 0, len(result.Thresholds))
		for threshold := range result.Thresholds {
			thresholds = append(thresholds, threshold)
		}
		sort.Float64s(thresholds)

		for _, threshold := range thresholds {
			est := result.Thresholds[threshold]
			b.WriteString(fmt.Sprintf("  >%g: hit %.1f%% (%d/%d), sustainability %.2f, CI [%.2f, %.2f]\n",
				threshold, est.WeightedFrequency*100, est.NExceeds, est.NGames,
				est.FinalSustainabilityScore, est.CILower, est.CIUpper))
		}
	}
	return b.String()
}

func writeOutput(path, format string, player *models.Player, season int, evaluation *models.Evaluation) error {
	switch format {
	case "csv":
		return export.ToFile(path, func(w io.Writer) error {
			return export.WriteEvaluationCSV(w, player.Name, evaluation)
		})
	case "json":
		return export.ToFile(path, func(w io.Writer) error {
			return export.WriteEvaluationJSON(w, export.EvaluationExport{
				Player:     *player,
				Season:     season,
				Evaluation: evaluation,
				ExportedAt: time.Now().UTC(),
			})
		})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
