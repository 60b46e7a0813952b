// Package logger provides pick audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hot-streak/internal/models"
)

// PickLogger provides a dedicated audit trail for generated picks, so a
// suspect recommendation can be traced back to the numbers behind it.
type PickLogger struct {
	*logrus.Entry
}

// NewPickLogger creates a new pick audit logger.
func NewPickLogger(baseLogger *logrus.Logger) *PickLogger {
	return &PickLogger{
		Entry: baseLogger.WithField("component", "picks"),
	}
}

// LogPickGenerated logs one generated pick with its supporting numbers.
func (pl *PickLogger) LogPickGenerated(pick models.Pick) {
	pl.WithFields(logrus.Fields{
		"pick_id":         pick.ID.String(),
		"player_id":       pick.PlayerID,
		"player":          pick.PlayerName,
		"team":            pick.Team,
		"stat":            string(pick.Stat),
		"threshold":       pick.Threshold,
		"hit_probability": pick.HitProbability,
		"sustainability":  pick.Sustainability,
		"confidence":      pick.Confidence,
		"fair_odds":       pick.FairOdds.String(),
		"preset":          pick.Preset,
		"career_phase":    string(pick.Phase),
		"game_date":       pick.GameDate.Format("2006-01-02"),
	}).Info("Pick generated")
}

// LogEvaluation logs the diagnostics of one player evaluation.
func (pl *PickLogger) LogEvaluation(playerID int, playerName string, evaluation *models.Evaluation) {
	pl.WithFields(logrus.Fields{
		"player_id":        playerID,
		"player":           playerName,
		"career_phase":      string(evaluation.Phase),
		"n_games":           evaluation.NGames,
		"regression_risk":   evaluation.Fatigue.RegressionRisk,
		"fatigue_z_score":   evaluation.Fatigue.ZScore,
		"minutes_declining": evaluation.Minutes.DecliningTrend,
		"minutes_slope":     evaluation.Minutes.TrendSlope,
	}).Debug("Player evaluated")
}

// LogRefresh logs a completed pick refresh cycle.
func (pl *PickLogger) LogRefresh(gameDate string, candidates, selected int) {
	pl.WithFields(logrus.Fields{
		"game_date":  gameDate,
		"candidates": candidates,
		"selected":   selected,
	}).Info("Pick refresh completed")
}
