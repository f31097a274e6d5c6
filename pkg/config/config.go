package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Forecast ForecastConfig `yaml:"forecast"`
	Scatter  ScatterConfig  `yaml:"scatter"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	ReloadPerHour  float64       `yaml:"reload_per_hour" validate:"gt=0"`
	ReloadBurst    int           `yaml:"reload_burst" validate:"gte=1"`
}

type DatabaseConfig struct {
	DSN             string            `yaml:"dsn" validate:"required"`
	Years           int               `yaml:"years" validate:"gte=1,lte=20"`
	ExcludeCustomer string            `yaml:"exclude_customer"`
	SiteAliases     map[string]string `yaml:"site_aliases"`
}

type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl" validate:"gt=0"`
	TodayTTL time.Duration `yaml:"today_ttl" validate:"gt=0"`
	Size     int           `yaml:"size" validate:"gte=0"`
}

type ForecastConfig struct {
	Alpha         float64 `yaml:"alpha" validate:"gt=0,lte=1"`
	Beta          float64 `yaml:"beta" validate:"gte=0,lte=1"`
	Gamma         float64 `yaml:"gamma" validate:"gte=0,lte=1"`
	Phi           float64 `yaml:"phi" validate:"gt=0,lte=1"`
	Season        int     `yaml:"season" validate:"gte=1"`
	FallbackYears int     `yaml:"fallback_years" validate:"gte=1"`
}

type ScatterConfig struct {
	// Keep records exactly 365 days old.
	InclusiveBoundary bool `yaml:"inclusive_boundary"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Environment string `yaml:"environment"`
}

// Load reads path (optional: "" means defaults only), applies defaults and
// environment overrides, then validates.
func Load(path string) (*Config, error) {
	// 0 is a valid beta/gamma, so their defaults are seeded before decoding.
	cfg := Config{Forecast: ForecastConfig{Beta: 0.05, Gamma: 0.1}}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8099"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 5 * time.Minute
	}
	if c.Server.ReloadPerHour == 0 {
		c.Server.ReloadPerHour = 12
	}
	if c.Server.ReloadBurst == 0 {
		c.Server.ReloadBurst = 2
	}
	if c.Database.Years == 0 {
		c.Database.Years = 7
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 4 * time.Hour
	}
	if c.Cache.TodayTTL == 0 {
		c.Cache.TodayTTL = 2 * time.Minute
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = 4096
	}
	if c.Forecast.Alpha == 0 {
		c.Forecast.Alpha = 0.3
	}
	if c.Forecast.Phi == 0 {
		c.Forecast.Phi = 0.98
	}
	if c.Forecast.Season == 0 {
		c.Forecast.Season = 7
	}
	if c.Forecast.FallbackYears == 0 {
		c.Forecast.FallbackYears = 7
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Environment == "" {
		c.Logging.Environment = "development"
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("ORDER_FORECAST_DSN"); ok && v != "" {
		c.Database.DSN = v
	}
	if v, ok := lookup("ORDER_FORECAST_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup("ENVIRONMENT"); ok && v != "" {
		c.Logging.Environment = v
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
