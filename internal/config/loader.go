// Package config provides configuration management for the Hot Streak application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
// and applies defaults for every model parameter, so a minimal file that only
// names the app is enough to run with the calibrated model.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("HOT_STREAK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// Missing file: continue with defaults and environment variables.

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hot-streak")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("api.base_url", "https://api.balldontlie.io/v1")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.per_page", 100)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.player_ttl", "168h")
	v.SetDefault("cache.season_ttl", "24h")
	v.SetDefault("cache.game_ttl", "24h")

	v.SetDefault("model.alpha", 0.85)
	v.SetDefault("model.window_size", 10)
	v.SetDefault("model.lookback_window", 20)
	v.SetDefault("model.bayesian_prior_alpha", 2.0)
	v.SetDefault("model.bayesian_prior_beta", 2.0)
	v.SetDefault("model.small_sample_threshold", 10)
	v.SetDefault("model.confidence_level", 0.95)
	v.SetDefault("model.thresholds", map[string][]float64{
		"pts":  {10, 15, 20, 25, 30},
		"reb":  {4, 6, 8, 10, 12},
		"ast":  {4, 6, 8, 10, 12},
		"fg3m": {2, 3, 4, 5},
	})

	v.SetDefault("picks.preset", "default")
	v.SetDefault("picks.top_n", 5)
	v.SetDefault("picks.min_minutes_last5", 18.0)
	v.SetDefault("picks.min_sample_games", 2)
	v.SetDefault("picks.min_probability", 0.77)
	v.SetDefault("picks.require_distinct_stats", true)
	v.SetDefault("picks.min_conf_gap_for_duplicate_stat", 0.05)
	v.SetDefault("picks.refresh_cron", "0 10 * * *")
	v.SetDefault("picks.refresh_timeout", "15m")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9090")
}
