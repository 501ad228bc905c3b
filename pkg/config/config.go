package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// CartBackend selects the cart store: memory, file, sqlite or redis.
	CartBackend string `env:"CART_BACKEND" envDefault:"file"`
	CartFile    string `env:"CART_FILE" envDefault:"data/carts.json"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/storefront.db"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// CatalogFile overrides the built-in demo catalog when set.
	CatalogFile string `env:"CATALOG_FILE"`

	AuthMaxAttempts   int           `env:"AUTH_MAX_ATTEMPTS" envDefault:"5"`
	AuthAttemptWindow time.Duration `env:"AUTH_ATTEMPT_WINDOW" envDefault:"15m"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present next to the binary.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
