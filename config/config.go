package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	JWTSecret   string   `env:"JWT_SECRET"`
	AppEnv      string   `env:"APP_ENV" envDefault:"development"`
	AppVersion  string   `env:"APP_VERSION" envDefault:"dev"`

	Database Database

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	HomeCacheTTL  time.Duration `env:"HOME_CACHE_TTL" envDefault:"5m"`

	KafkaBroker  string `env:"KAFKA_BROKER"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"crm_events"`
	KafkaGroupID string `env:"KAFKA_GROUP_ID" envDefault:"eventpro-indexer"`

	ElasticsearchURL string `env:"ELASTICSEARCH_URL"`
	SentryDSN        string `env:"SENTRY_DSN"`

	Twilio Twilio

	ReminderSchedule string        `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
	ReminderWindow   time.Duration `env:"REMINDER_WINDOW" envDefault:"24h"`
}

type Database struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	URL             string        `env:"DB_URL"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"50"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type Twilio struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
}

func (t Twilio) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DB_URL is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.URL == "" {
			return fmt.Errorf("DB_URL is required for the sqlite driver (a file path)")
		}
		// sqlite folds case for ASCII only and sums numeric columns as floats.
		if c.AppEnv == "production" {
			return fmt.Errorf("DB_DRIVER=sqlite is for development and tests, not APP_ENV=production")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
