package cmd

import (
	"fmt"
	"time"

	"foodify/internal/adapters/out/postgres"

	"github.com/caarlos0/env/v10"
)

const testEnv = "test"

type Config struct {
	HTTPPort   int    `env:"HTTP_PORT"   envDefault:"3000"`
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	// RedisURL enables cross-instance event delivery when set.
	RedisURL string `env:"REDIS_URL"`

	// CORSAllowedOrigins is a comma separated origin list; "*" allows any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV"   envDefault:"development"`

	OrderProgressInterval time.Duration `env:"ORDER_PROGRESS_INTERVAL" envDefault:"5s"`
	EventBuffer           int           `env:"EVENT_BUFFER"            envDefault:"16"`
}

// ParseConfig reads the configuration from the environment.
func ParseConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("error while parsing config: %w", err)
	}
	return config, nil
}

// DatabaseSettings returns the connection settings for the orders database.
func (c Config) DatabaseSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Database: c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// IsTest reports whether the process runs under APP_ENV=test.
func (c Config) IsTest() bool {
	return c.AppEnv == testEnv
}
