package main

import (
	"context"
	"time"

	"newsapi-backend/internal/infrastructure/cache"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 30 * time.Second

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the server and starts consuming the webhook queue
func setupAsynqServer(cfg *Config, redis *cache.RedisClient, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		redis.AsynqOpt(),
		asynq.Config{
			Queues: map[string]int{
				cfg.Webhook.Queue: 10,
			},
			Concurrency:     cfg.Concurrency,
			ShutdownTimeout: shutdownTimeout,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Msg("[Asynq] task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown stops pulling tasks and waits up to shutdownTimeout for active ones
func (s *asynqServer) Shutdown() {
	log.Info().Dur("max_wait", shutdownTimeout).Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Stopped")
}
