// Package service coordinates data fetching, evaluation and pick generation.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hot-streak/internal/config"
	"github.com/yourusername/hot-streak/internal/datasource"
	"github.com/yourusername/hot-streak/internal/engine"
	"github.com/yourusername/hot-streak/internal/metrics"
	"github.com/yourusername/hot-streak/internal/models"
)

// Threshold ladders per preset. Conservative lines clear more often,
// aggressive lines pay better when they do.
var presets = map[string]map[models.Stat][]float64{
	"default": {
		models.StatPoints:   {20, 25, 30, 35, 40},
		models.StatAssists:  {5, 7, 10, 12, 15},
		models.StatRebounds: {6, 8, 10, 12, 14},
		models.StatThrees:   {2, 3, 4, 5, 6},
	},
	"conservative": {
		models.StatPoints:   {15, 20, 25, 30},
		models.StatAssists:  {4, 6, 8, 10},
		models.StatRebounds: {5, 7, 9, 11},
		models.StatThrees:   {1, 2, 3, 4},
	},
	"aggressive": {
		models.StatPoints:   {25, 30, 35, 40, 45},
		models.StatAssists:  {7, 10, 12, 15, 18},
		models.StatRebounds: {8, 10, 12, 14, 16},
		models.StatThrees:   {3, 4, 5, 6, 7},
	},
}

// PresetThresholds returns the threshold ladders for a named preset,
// falling back to the default preset for unknown names.
func PresetThresholds(name string) map[models.Stat][]float64 {
	if ladders, ok := presets[name]; ok {
		return ladders
	}
	return presets["default"]
}

// PickService generates ranked pick-of-the-day lines for a pool of players.
type PickService struct {
	source    datasource.DataSource
	evaluator *engine.Evaluator
	cfg       config.PicksConfig
	logger    *logrus.Logger
	now       func() time.Time
}

// NewPickService creates a pick generation service.
func NewPickService(source datasource.DataSource, evaluator *engine.Evaluator, cfg config.PicksConfig, logger *logrus.Logger) *PickService {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	return &PickService{
		source:    source,
		evaluator: evaluator,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// GeneratePicks evaluates every player in the pool against the configured
// preset's threshold ladders and returns the top picks, ranked by the
// Wilson lower bound of the hit probability so thin samples cannot
// outrank well-supported lines.
func (s *PickService) GeneratePicks(ctx context.Context, playerIDs []int, season int) ([]models.Pick, error) {
	ladders := PresetThresholds(s.cfg.Preset)
	generatedAt := s.now()

	var candidates []models.Pick
	for _, playerID := range playerIDs {
		picks, err := s.evaluatePlayer(ctx, playerID, season, ladders, generatedAt)
		if err != nil {
			s.logger.WithError(err).WithField("player_id", playerID).Warn("Skipping player")
			continue
		}
		candidates = append(candidates, picks...)
	}

	top := s.topPicks(candidates)
	for _, pick := range top {
		metrics.RecordPickGenerated()
		metrics.PickConfidenceScore.WithLabelValues(pick.PlayerName, string(pick.Stat)).Set(pick.Confidence)
	}

	s.logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"selected":   len(top),
		"preset":     s.cfg.Preset,
	}).Info("Generated picks")

	return top, nil
}

// evaluatePlayer produces candidate picks for one player, or none when the
// player fails the activity filters.
func (s *PickService) evaluatePlayer(ctx context.Context, playerID, season int, ladders map[models.Stat][]float64, generatedAt time.Time) ([]models.Pick, error) {
	player, err := s.source.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	series, err := s.source.GetRecentGames(ctx, playerID, season, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}
	if len(series) == 0 {
		return nil, nil
	}

	if avg := averageMinutesLastN(series, 5); avg < s.cfg.MinMinutesLast5 {
		s.logger.WithFields(logrus.Fields{
			"player":      player.Name,
			"avg_minutes": avg,
		}).Debug("Player below minutes floor")
		return nil, nil
	}

	seasons, err := s.source.GetCareerSeasons(ctx, playerID, season-19, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get career seasons: %w", err)
	}

	start := time.Now()
	evaluation, err := s.evaluator.Evaluate(series, seasons, ladders)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	metrics.RecordEvaluation(time.Since(start).Seconds())

	if evaluation.NGames < s.cfg.MinSampleGames {
		return nil, nil
	}

	var picks []models.Pick
	for stat, statResult := range evaluation.Results {
		if statResult.Outcome != models.StatOK {
			continue
		}
		for threshold, result := range statResult.Thresholds {
			if result.WeightedFrequency < s.cfg.MinProbability {
				continue
			}
			picks = append(picks, models.Pick{
				ID:             uuid.New(),
				PlayerID:       player.ID,
				PlayerName:     player.Name,
				Team:           player.Team,
				Stat:           stat,
				Threshold:      threshold,
				HitProbability: result.WeightedFrequency,
				Sustainability: result.FinalSustainabilityScore,
				Confidence:     result.CILower,
				FairOdds:       fairOdds(result.WeightedFrequency),
				Preset:         s.cfg.Preset,
				Phase:          evaluation.Phase,
				GameDate:       generatedAt.Truncate(24 * time.Hour),
				GeneratedAt:    generatedAt,
			})
		}
	}
	return picks, nil
}

// topPicks ranks candidates by confidence and applies the stat diversity
// constraint: a second pick on an already-used stat is admitted only when
// its hit probability differs from the first by at least the configured gap.
func (s *PickService) topPicks(candidates []models.Pick) []models.Pick {
	sorted := make([]models.Pick, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].HitProbability > sorted[j].HitProbability
	})

	selected := make([]models.Pick, 0, s.cfg.TopN)
	used := make(map[models.Stat]float64)

	for _, pick := range sorted {
		if len(selected) >= s.cfg.TopN {
			break
		}
		if prev, dup := used[pick.Stat]; dup && s.cfg.RequireDistinct {
			if gap := prev - pick.HitProbability; gap < s.cfg.MinConfidenceGap && gap > -s.cfg.MinConfidenceGap {
				continue
			}
		}
		selected = append(selected, pick)
		if _, dup := used[pick.Stat]; !dup {
			used[pick.Stat] = pick.HitProbability
		}
	}
	return selected
}

// averageMinutesLastN computes mean minutes over the most recent n games.
// Games without a minutes value count as zero, matching how a DNP reads.
func averageMinutesLastN(series models.GameSeries, n int) float64 {
	sorted := series.Sorted()
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	if len(sorted) == 0 {
		return 0
	}
	var total float64
	for _, game := range sorted {
		total += game.Values[models.StatMinutes]
	}
	return total / float64(len(sorted))
}

// fairOdds converts a hit probability into decimal odds, rounded to two
// places. A zero probability has no fair price; decimal zero marks it.
func fairOdds(probability float64) decimal.Decimal {
	if probability <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(probability)).Round(2)
}
