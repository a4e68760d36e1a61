package main

import (
	"fmt"
	"os"
	"strconv"

	"art-gallery-service/database"
)

type Config struct {
	Port string
	Env  string

	Postgres database.Config

	JWTSecret string

	StripeSecretKey string

	PayPalClientID string
	PayPalSecret   string
	PayPalBaseURL  string
	PayPalSimulate bool

	RabbitMQURL    string
	EventsExchange string

	AuthRatePerMinute int
	AuthRateBurst     int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: database.Config{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		PayPalClientID:  os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:    os.Getenv("PAYPAL_SECRET"),
		PayPalBaseURL:   os.Getenv("PAYPAL_BASE_URL"),
		PayPalSimulate:  getEnv("PAYPAL_SIMULATE", "false") == "true",
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		EventsExchange:  getEnv("EVENTS_EXCHANGE", "gallery.orders"),

		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 100),
		AuthRateBurst:     getEnvInt("AUTH_RATE_BURST", 50),
	}

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.Name == "" || cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
