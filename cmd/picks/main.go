// Package main provides the pick-of-the-day CLI: one-shot generation and
// a scheduled refresh daemon.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hot-streak/internal/config"
	"github.com/yourusername/hot-streak/internal/database"
	"github.com/yourusername/hot-streak/internal/datasource"
	"github.com/yourusername/hot-streak/internal/engine"
	"github.com/yourusername/hot-streak/internal/export"
	"github.com/yourusername/hot-streak/internal/health"
	"github.com/yourusername/hot-streak/internal/league"
	applogger "github.com/yourusername/hot-streak/internal/logger"
	"github.com/yourusername/hot-streak/internal/metrics"
	"github.com/yourusername/hot-streak/internal/models"
	"github.com/yourusername/hot-streak/internal/repository"
	"github.com/yourusername/hot-streak/internal/scheduler"
	"github.com/yourusername/hot-streak/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	playersArg string
	seasonArg  int
	outputPath string
	formatArg  string

	cfg        *config.Config
	logger     *logrus.Logger
	pickLogger *applogger.PickLogger
	db         *database.DB
	repos      *repository.Repositories
	pickSvc    *service.PickService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&playersArg, "players", "p", "", "Comma-separated player IDs to evaluate")
	rootCmd.PersistentFlags().IntVarP(&seasonArg, "season", "s", time.Now().Year()-1, "Season year")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path for generated picks")
	generateCmd.Flags().StringVarP(&formatArg, "format", "f", "csv", "Output format: csv or json")
}

var rootCmd = &cobra.Command{
	Use:   "picks",
	Short: "Generate pick-of-the-day player lines",
	Long:  `Rank player stat lines by the probability of hitting them, adjusted for regression to the mean.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate picks once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateOnce(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled pick refresh daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("picks %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func main() {
	rootCmd.AddCommand(generateCmd, serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	return err
}

func setupDependencies(ctx context.Context) error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	pickLogger = applogger.NewPickLogger(logger)

	params, err := cfg.Model.EngineParams()
	if err != nil {
		return fmt.Errorf("invalid model configuration: %w", err)
	}
	evaluator, err := engine.NewEvaluator(params, engine.WithLeague(league.NewRegistry(league.DefaultLoader)))
	if err != nil {
		return fmt.Errorf("failed to create evaluator: %w", err)
	}

	source := buildDataSource()
	pickSvc = service.NewPickService(source, evaluator, cfg.Picks, logger)

	if cfg.Database.Enabled() {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		repos, err = repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
	}

	return nil
}

func buildDataSource() datasource.DataSource {
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

func parsePlayerIDs() ([]int, error) {
	if strings.TrimSpace(playersArg) == "" {
		return nil, fmt.Errorf("--players is required (comma-separated player IDs)")
	}
	parts := strings.Split(playersArg, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid player ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func refresh(ctx context.Context) error {
	playerIDs, err := parsePlayerIDs()
	if err != nil {
		return err
	}

	picks, err := pickSvc.GeneratePicks(ctx, playerIDs, seasonArg)
	if err != nil {
		return fmt.Errorf("pick generation failed: %w", err)
	}
	for _, pick := range picks {
		pickLogger.LogPickGenerated(pick)
	}

	if repos != nil && len(picks) > 0 {
		gameDate := picks[0].GameDate
		if _, err := repos.Pick.DeleteByGameDate(ctx, gameDate); err != nil {
			return fmt.Errorf("failed to clear existing picks: %w", err)
		}
		if err := repos.Pick.CreateBatch(ctx, picks); err != nil {
			return fmt.Errorf("failed to persist picks: %w", err)
		}
		pickLogger.LogRefresh(gameDate.Format("2006-01-02"), len(playerIDs), len(picks))
	}

	if outputPath != "" {
		if err := writePicks(outputPath, formatArg, picks); err != nil {
			return fmt.Errorf("failed to export picks: %w", err)
		}
	}

	return nil
}

func generateOnce(ctx context.Context) error {
	return refresh(ctx)
}

func serve(ctx context.Context) error {
	sched := scheduler.NewScheduler(logger)
	if err := sched.SchedulePickRefresh(cfg.Picks.RefreshCron, cfg.Picks.RefreshTimeout, refresh); err != nil {
		return fmt.Errorf("failed to schedule pick refresh: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      logger,
		Scheduler:   sched,
	}
	if db != nil {
		healthCfg.DB = db
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	healthServer.SetReady(true)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			logger.WithField("address", cfg.Metrics.Address).Info("Metrics server listening")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	logger.WithFields(logrus.Fields{
		"cron":     cfg.Picks.RefreshCron,
		"next_run": sched.GetNextRun().Format(time.RFC3339),
	}).Info("Pick refresh daemon started")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("Shutdown signal received")

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop scheduler")
	}
	if err := healthServer.Shutdown(); err != nil {
		logger.WithError(err).Error("Failed to stop health server")
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to stop metrics server")
		}
	}

	return nil
}

func writePicks(path, format string, picks []models.Pick) error {
	switch format {
	case "csv":
		return export.ToFile(path, func(w io.Writer) error {
			return export.WritePicksCSV(w, picks)
		})
	case "json":
		return export.ToFile(path, func(w io.Writer) error {
			return export.WritePicksJSON(w, picks)
		})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
