package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"minestake:"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"minestake.db"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	BoardRows      int   `env:"BOARD_ROWS" envDefault:"5"`
	BoardCols      int   `env:"BOARD_COLS" envDefault:"5"`
	BoardPenalties int   `env:"BOARD_PENALTIES" envDefault:"6"`
	RandomSeed     int64 `env:"RANDOM_SEED"`

	HighScoreKey    string        `env:"HIGH_SCORE_KEY" envDefault:"@minestake_high_score"`
	LeaderboardKey  string        `env:"LEADERBOARD_KEY" envDefault:"@minestake_leaderboard"`
	LeaderboardSize int           `env:"LEADERBOARD_SIZE" envDefault:"5"`
	DateLayout      string        `env:"DATE_LAYOUT" envDefault:"2006-01-02"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`
}

// Load reads the configuration from the environment. Outside production a
// missing JWT secret is replaced by a random one, so tokens do not survive a
// restart.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = uuid.NewString()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store driver: %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in %s", c.Env)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}

	if c.BoardRows <= 0 || c.BoardCols <= 0 {
		return fmt.Errorf("board must have positive dimensions, got %dx%d", c.BoardRows, c.BoardCols)
	}
	if c.BoardPenalties < 0 || c.BoardPenalties >= c.BoardRows*c.BoardCols {
		return fmt.Errorf("board penalties must be in [0, %d), got %d", c.BoardRows*c.BoardCols, c.BoardPenalties)
	}

	if strings.TrimSpace(c.HighScoreKey) == "" || strings.TrimSpace(c.LeaderboardKey) == "" {
		return fmt.Errorf("storage keys must not be empty")
	}
	if c.HighScoreKey == c.LeaderboardKey {
		return fmt.Errorf("high score and leaderboard keys must differ")
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("leaderboard size must be positive, got %d", c.LeaderboardSize)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %s", c.WriteTimeout)
	}

	return nil
}
