package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig
	DND5E  DND5EConfig
	Engine EngineConfig
	Log    LogConfig
	HTTP   HTTPConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL"` // empty means in-memory repositories
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string `env:"DND5E_API_URL" envDefault:"https://www.dnd5eapi.co/api"`
}

// EngineConfig holds rules engine configuration
type EngineConfig struct {
	ClassesFile string `env:"ENGINE_CLASSES_FILE"`
	Seed        int64  `env:"ENGINE_SEED"` // 0 means a crypto source
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT"`
}

// HTTPConfig holds the HTTP surface configuration
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// UseRedis reports whether a Redis store is configured
func (c *Config) UseRedis() bool {
	return c.Redis.URL != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.HTTP.Addr == "" {
		return nil, fmt.Errorf("HTTP_ADDR must not be empty")
	}

	return cfg, nil
}
