package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Session SessionConfig
	Limits  LimitsConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" env-default:":5002"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DBConfig struct {
	// URI is a postgres:// URL or a SQLite path such as sqlite:///posts.db.
	URI string `env:"DB_URI" env-default:"sqlite:///posts.db"`
}

type SessionConfig struct {
	Secret string        `env:"SECRET_KEY" env-required:"true"`
	Dir    string        `env:"SESSION_DIR" env-default:"data/sessions"`
	TTL    time.Duration `env:"SESSION_TTL" env-default:"24h"`
}

// LimitsConfig throttles login and registration attempts per client.
type LimitsConfig struct {
	LoginRate  float64 `env:"LOGIN_RATE" env-default:"1"`
	LoginBurst int     `env:"LOGIN_BURST" env-default:"5"`
}

// IsProduction reports whether the app runs with APP_ENV=prod.
func (c Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// Load reads configuration from the environment, after loading envFile if it exists.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if len(cfg.Session.Secret) < 16 {
		return Config{}, fmt.Errorf("SECRET_KEY must be at least 16 characters")
	}
	return cfg, nil
}
