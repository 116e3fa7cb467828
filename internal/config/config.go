package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/terraincognita07/shim/internal/security"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	Port     string `mapstructure:"PORT"`
	Timezone string `mapstructure:"TZ"`
	LogFile  string `mapstructure:"LOG_FILE"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DBPath      string `mapstructure:"DB_PATH"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	SecretKey string `mapstructure:"SECRET_KEY"`

	SeoulAirAPIKey     string        `mapstructure:"SEOUL_AIR_API_KEY"`
	KMAAPIKey          string        `mapstructure:"KMA_API_KEY"`
	UpstageAPIKey      string        `mapstructure:"UPSTAGE_API_KEY"`
	UpstageBaseURL     string        `mapstructure:"UPSTAGE_BASE_URL"`
	UpstageModel       string        `mapstructure:"UPSTAGE_MODEL"`
	AirQualityCacheTTL time.Duration `mapstructure:"AIR_QUALITY_CACHE_TTL"`
	HTTPTimeout        time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// EphemeralSecret is set when SECRET_KEY was empty and one was generated for this process.
	EphemeralSecret bool `mapstructure:"-"`
}

var defaults = map[string]interface{}{
	"APP_ENV":               "development",
	"PORT":                  "8080",
	"TZ":                    "Asia/Seoul",
	"LOG_FILE":              "",
	"DB_DRIVER":             "sqlite",
	"DB_PATH":               filepath.Join("data", "shim.db"),
	"DATABASE_URL":          "",
	"SECRET_KEY":            "",
	"SEOUL_AIR_API_KEY":     "",
	"KMA_API_KEY":           "",
	"UPSTAGE_API_KEY":       "",
	"UPSTAGE_BASE_URL":      "https://api.upstage.ai/v1",
	"UPSTAGE_MODEL":         "solar-1-mini-chat",
	"AIR_QUALITY_CACHE_TTL": "10m",
	"HTTP_TIMEOUT":          "10s",
}

// Load reads an optional .env file from dir and lets the environment override it.
func Load(dir string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if strings.TrimSpace(cfg.SecretKey) == "" {
		secret, err := security.NewSecretKey(48)
		if err != nil {
			return Config{}, fmt.Errorf("generate secret key: %w", err)
		}
		cfg.SecretKey = secret
		cfg.EphemeralSecret = true
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.AirQualityCacheTTL < 0 {
		cfg.AirQualityCacheTTL = 0
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.AppEnv)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// Location falls back to UTC when TZ does not name a known zone.
func (c Config) Location() (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}
