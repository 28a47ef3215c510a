package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"newsapi-backend/internal/infrastructure/cache"

	"github.com/rs/zerolog/log"
)

// startServices performs health checks and starts the probe endpoint
func startServices(cfg *Config, redis *cache.RedisClient) error {
	log.Info().Str("app", cfg.App.Name).Msg("news worker starting")

	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return redis.Connect(ctx)
		}},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("health check passed")
	}

	go startHealthCheckServer(cfg.HealthAddr, redis)

	return nil
}

// startHealthCheckServer serves /health and /ready for orchestrator probes
func startHealthCheckServer(addr string, redis *cache.RedisClient) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP","service":"news-worker"}`))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := redis.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	})

	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
