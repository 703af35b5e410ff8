// Package config loads client configuration from a .env file and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// APIURL is the marketplace backend base URL.
	APIURL string `mapstructure:"API_URL"`
	// HTTPTimeout is the per-request timeout in seconds.
	HTTPTimeout int    `mapstructure:"HTTP_TIMEOUT"`
	StatePath   string `mapstructure:"STATE_PATH"`
	MaxImages   int    `mapstructure:"MAX_IMAGES"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFile     string `mapstructure:"LOG_FILE"`
}

// Load reads configuration from a .env file (when present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env is fine; the environment still wins either way.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_URL", "http://localhost:3000/")
	v.SetDefault("HTTP_TIMEOUT", 30)
	v.SetDefault("STATE_PATH", "marketplace.db")
	v.SetDefault("MAX_IMAGES", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL must not be empty")
	}
	if cfg.MaxImages <= 0 {
		return nil, fmt.Errorf("MAX_IMAGES must be positive, got %d", cfg.MaxImages)
	}

	return &cfg, nil
}
