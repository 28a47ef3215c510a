package main

import (
	"os"
	"strconv"

	"newsapi-backend/internal/config"

	"github.com/rs/zerolog/log"
)

// Config holds the worker's view of the application config
type Config struct {
	App         config.AppConfig
	Redis       config.RedisConfig
	Webhook     config.WebhookConfig
	Concurrency int
	HealthAddr  string
}

// loadConfig reads the shared config plus worker-only settings
func loadConfig() (*Config, error) {
	base, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App:         base.App,
		Redis:       base.Redis,
		Webhook:     base.Webhook,
		Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		HealthAddr:  getEnv("WORKER_HEALTH_ADDR", ":9999"),
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Str("queue", cfg.Webhook.Queue).
		Int("concurrency", cfg.Concurrency).
		Dur("webhook_timeout", cfg.Webhook.Timeout).
		Msg("[Config] worker configuration loaded")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}
