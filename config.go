package main

import (
	"fmt"
	"os"
	"time"

	"catalog-service/services"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Port        string
	Environment string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	Contentful services.ContentfulConfig

	JWTSecret string

	AutoSeed bool
	DataDir  string

	SyncInterval time.Duration
	RedisAddr    string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		Contentful: services.ContentfulConfig{
			BaseURL:     getEnv("CONTENTFUL_BASE_URL", "https://cdn.contentful.com"),
			SpaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
			Environment: getEnv("CONTENTFUL_ENVIRONMENT", "master"),
			ContentType: os.Getenv("CONTENTFUL_CONTENT_TYPE"),
			AccessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		AutoSeed:  getEnv("AUTO_SEED", "false") == "true",
		DataDir:   getEnv("DATA_DIR", "data"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	interval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}
	cfg.SyncInterval = interval

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
