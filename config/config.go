package config

import (
	"fmt"
	"os"
	"strconv"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
}

type LogConfig struct {
	Style string
	Level string
}

type EngineConfig struct {
	CacheSize    int
	DefaultTier  int
	MoveDeadline int // milliseconds per move request
}

const (
	defaultCacheSize    = 1 << 18
	defaultTier         = 3
	defaultMoveDeadline = 5000
)

func LoadConfig() (*Config, error) {
	cacheSize, err := envInt("ENGINE_CACHE_SIZE", defaultCacheSize)
	if err != nil {
		return nil, err
	}

	tier, err := envInt("ENGINE_DEFAULT_TIER", defaultTier)
	if err != nil {
		return nil, err
	}

	moveDeadline, err := envInt("ENGINE_MOVE_DEADLINE_MS", defaultMoveDeadline)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			CacheSize:    cacheSize,
			DefaultTier:  tier,
			MoveDeadline: moveDeadline,
		},
	}

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("error converting string to int: %s: %w", key, err)
	}
	return v, nil
}
