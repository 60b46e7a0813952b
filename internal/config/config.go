// Package config provides configuration management for the Hot Streak application.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/hot-streak/internal/engine"
	"github.com/yourusername/hot-streak/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Picks    PicksConfig    `mapstructure:"picks"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// APIConfig configures the NBA stats API client
type APIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	Key            string  `mapstructure:"key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
	PerPage        int     `mapstructure:"per_page" validate:"gt=0,lte=100"`
}

// CacheConfig controls in-memory caching of API responses
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	PlayerTTL     time.Duration `mapstructure:"player_ttl"`
	SeasonTTL     time.Duration `mapstructure:"season_ttl"`
	GameTTL       time.Duration `mapstructure:"game_ttl"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// Enabled reports whether persistence is configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// ModelConfig holds the statistical model parameters
type ModelConfig struct {
	Alpha                float64              `mapstructure:"alpha" validate:"required,gt=0.5,lte=1"`
	Lambda               map[string]float64   `mapstructure:"lambda_params" validate:"dive,gt=0"`
	Thresholds           map[string][]float64 `mapstructure:"thresholds"`
	WindowSize           int                  `mapstructure:"window_size" validate:"required,gt=0"`
	LookbackWindow       int                  `mapstructure:"lookback_window" validate:"required,gt=0"`
	BayesianPriorAlpha   float64              `mapstructure:"bayesian_prior_alpha" validate:"required,gt=0"`
	BayesianPriorBeta    float64              `mapstructure:"bayesian_prior_beta" validate:"required,gt=0"`
	SmallSampleThreshold int                  `mapstructure:"small_sample_threshold" validate:"required,gt=0"`
	ConfidenceLevel      float64              `mapstructure:"confidence_level" validate:"required,gt=0,lt=1"`
}

// PicksConfig configures pick-of-the-day generation
type PicksConfig struct {
	Preset             string        `mapstructure:"preset"`
	TopN               int           `mapstructure:"top_n"`
	MinMinutesLast5    float64       `mapstructure:"min_minutes_last5"`
	MinSampleGames     int           `mapstructure:"min_sample_games"`
	MinProbability     float64       `mapstructure:"min_probability" validate:"gte=0,lte=1"`
	RequireDistinct    bool          `mapstructure:"require_distinct_stats"`
	MinConfidenceGap   float64       `mapstructure:"min_conf_gap_for_duplicate_stat"`
	RefreshCron        string        `mapstructure:"refresh_cron"`
	RefreshTimeout     time.Duration `mapstructure:"refresh_timeout"`
}

// MetricsConfig represents metrics server configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// EngineParams converts the model section into validated engine
// parameters, translating string keys into typed stats and phases so a
// misspelled stat name fails at load time instead of producing empty
// results downstream.
func (m ModelConfig) EngineParams() (engine.Params, error) {
	params := engine.Params{
		Alpha:                m.Alpha,
		WindowSize:           m.WindowSize,
		LookbackWindow:       m.LookbackWindow,
		PriorAlpha:           m.BayesianPriorAlpha,
		PriorBeta:            m.BayesianPriorBeta,
		SmallSampleThreshold: m.SmallSampleThreshold,
		ConfidenceLevel:      m.ConfidenceLevel,
	}

	if len(m.Lambda) > 0 {
		params.Lambda = make(map[models.CareerPhase]float64, len(m.Lambda))
		for name, value := range m.Lambda {
			phase := models.CareerPhase(name)
			if !phase.Valid() {
				return engine.Params{}, fmt.Errorf("unknown career phase %q in lambda_params", name)
			}
			params.Lambda[phase] = value
		}
	}

	if err := params.Validate(); err != nil {
		return engine.Params{}, err
	}
	return params, nil
}

// ThresholdMap converts configured threshold ladders into typed stat keys.
func (m ModelConfig) ThresholdMap() (map[models.Stat][]float64, error) {
	out := make(map[models.Stat][]float64, len(m.Thresholds))
	for name, cutoffs := range m.Thresholds {
		stat, err := models.ParseStat(name)
		if err != nil {
			return nil, fmt.Errorf("thresholds: %w", err)
		}
		if !stat.ThresholdEligible() {
			return nil, fmt.Errorf("stat %q does not support thresholds", name)
		}
		out[stat] = append([]float64(nil), cutoffs...)
	}
	return out, nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
