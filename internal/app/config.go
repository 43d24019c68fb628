package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/validation"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Postgres      connection.PostgresConfig
	RedisAddr     string
	KafkaBroker   string
	JWTSecret     string
	UnknownFields validation.UnknownFieldPolicy
	AutoMigrate   bool

	RateLimitRPS   float64
	RateLimitBurst int

	OutboxPollInterval time.Duration
	ConnectRetries     int
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: getEnv("PORT", "3000"),
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		UnknownFields: validation.ParseUnknownFieldPolicy(os.Getenv("VALIDATION_UNKNOWN_FIELDS")),
	}

	var err error
	if cfg.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", false); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 40); err != nil {
		return Config{}, err
	}
	if cfg.ConnectRetries, err = envInt("CONNECT_RETRIES", 5); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = envDuration("OUTBOX_POLL_INTERVAL", producer.DefaultPollInterval); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireAPI reports the settings the HTTP server cannot start without.
func (c Config) RequireAPI() error {
	if c.Postgres.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// RequireKafka reports the settings the worker and consumer cannot start without.
func (c Config) RequireKafka() error {
	if c.Postgres.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
