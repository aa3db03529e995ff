package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Port     string        `envconfig:"PORT" default:"4000" validate:"required,numeric"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Timezone string        `envconfig:"TIMEZONE" default:"Asia/Kolkata" validate:"required"`
	Timeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	Weather   WeatherConfig
	PlantNet  PlantNetConfig
	Catalog   CatalogConfig
	Region    RegionConfig
	Recommend RecommendConfig
}

// WeatherConfig selects providers and the optional snapshot cache.
type WeatherConfig struct {
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string `envconfig:"WEATHERAPI_API_KEY"`
	OpenMeteoEnabled  bool   `envconfig:"OPENMETEO_ENABLED" default:"true"`
	GeocoderAPIKey    string `envconfig:"GEOCODER_API_KEY"`

	// CacheTTL of 0 disables the cache.
	CacheTTL      time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"0s" validate:"gte=0"`
	PruneInterval time.Duration `envconfig:"CACHE_PRUNE_INTERVAL" default:"5m" validate:"gte=1s"`
}

type PlantNetConfig struct {
	APIKey string `envconfig:"PLANTNET_API_KEY"`
}

// CatalogConfig picks the requirement source. DatabaseURL wins over Path;
// with neither set the embedded dataset is used.
type CatalogConfig struct {
	Path        string `envconfig:"CATALOG_PATH"`
	DatabaseURL string `envconfig:"CATALOG_DATABASE_URL" validate:"omitempty,url"`
}

type RegionConfig struct {
	SplitLatitude float64 `envconfig:"REGION_SPLIT_LATITUDE" default:"16" validate:"gte=-90,lte=90"`
	SouthKey      string  `envconfig:"REGION_SOUTH_KEY" default:"india_south" validate:"required"`
	NorthKey      string  `envconfig:"REGION_NORTH_KEY" default:"india_north" validate:"required"`
	DefaultKey    string  `envconfig:"REGION_DEFAULT_KEY" default:"india_kharif" validate:"required"`
}

type RecommendConfig struct {
	Concurrency int `envconfig:"RECOMMENDER_CONCURRENCY" default:"4" validate:"gte=1,lte=64"`
}

// AnyWeatherProvider reports whether at least one provider will be built.
func (w WeatherConfig) AnyWeatherProvider() bool {
	return w.OpenWeatherAPIKey != "" || w.WeatherAPIKey != "" || w.OpenMeteoEnabled
}

// SlogLevel maps LogLevel onto slog.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Location resolves Timezone.
func (c *AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads configuration from the environment, after merging a .env file
// when one exists.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("config: no .env file loaded", "error", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}
