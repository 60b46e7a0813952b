package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hot-streak/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionFormatter(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production logger should emit JSON")
}

func TestLogPickGenerated(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPickLogger(log)

	pl.LogPickGenerated(models.Pick{
		ID:             uuid.New(),
		PlayerID:       115,
		PlayerName:     "Stephen Curry",
		Team:           "GSW",
		Stat:           models.StatPoints,
		Threshold:      25,
		HitProbability: 0.81,
		Sustainability: 0.7,
		Confidence:     0.62,
		FairOdds:       decimal.NewFromFloat(1.23),
		Preset:         "default",
		Phase:          models.PhasePeak,
		GameDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "picks", entry["component"])
	assert.Equal(t, "Stephen Curry", entry["player"])
	assert.Equal(t, "pts", entry["stat"])
	assert.Equal(t, 0.81, entry["hit_probability"])
	assert.Equal(t, "2025-02-01", entry["game_date"])
}

func TestLogEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPickLogger(log)

	pl.LogEvaluation(115, "Stephen Curry", &models.Evaluation{
		Phase:  models.PhasePeak,
		NGames: 20,
		Fatigue: models.FatigueAnalysis{
			RegressionRisk: 0.42,
			ZScore:         1.1,
		},
		Minutes: models.MinutesTrend{
			DecliningTrend: true,
			TrendSlope:     -0.8,
		},
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "peak", entry["career_phase"])
	assert.Equal(t, 0.42, entry["regression_risk"])
	assert.Equal(t, true, entry["minutes_declining"])
}
