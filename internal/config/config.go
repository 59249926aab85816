package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string        `env:"SERVER_PORT" env-default:"5000"`
	DatabaseURI string        `env:"DB_URI" env-default:"sqlite:///library.db"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisDB     int           `env:"REDIS_DB" env-default:"0"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	CacheTTL    time.Duration `env:"CACHE_TTL" env-default:"5m"`
	AutoMigrate bool          `env:"AUTO_MIGRATE" env-default:"false"`
	SwaggerHost string        `env:"SWAGGER_HOST"`
}

// Load builds Config from the environment with sensible defaults. A dotenv
// file named by CONFIG_PATH, or ./.env when present, is applied first.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(".env"); err == nil {
			path = ".env"
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}
