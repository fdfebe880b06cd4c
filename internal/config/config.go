package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// http
	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	NutritionRateLimitPerMin    int      `toml:"nutrition_rate_limit_per_min"`

	// domain
	DefaultTimezone          string `toml:"default_timezone"`
	LauncherCacheTTLHours    int    `toml:"launcher_cache_ttl_hours"`
	LauncherSweepSchedule    string `toml:"launcher_sweep_schedule"`
	SessionsCleanupSchedule  string `toml:"sessions_cleanup_schedule"`
	AnalyticsBufferSize      int    `toml:"analytics_buffer_size"`
	OpenFoodFactsBaseURL     string `toml:"open_food_facts_base_url"`
	NutritionCacheSizeMB     int    `toml:"nutrition_cache_size_mb"`
	NutritionCacheTTLMinutes int    `toml:"nutrition_cache_ttl_minutes"`
}

func (c *Config) LauncherCacheTTL() time.Duration {
	if c.LauncherCacheTTLHours <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.LauncherCacheTTLHours) * time.Hour
}

func (c *Config) NutritionCacheTTL() time.Duration {
	if c.NutritionCacheTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.NutritionCacheTTLMinutes) * time.Minute
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.DefaultTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	return cfg, nil
}
