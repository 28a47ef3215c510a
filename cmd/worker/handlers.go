package main

import (
	"context"

	"newsapi-backend/internal/infrastructure/queue/handlers"
	"newsapi-backend/internal/infrastructure/webhook"
	"newsapi-backend/internal/shared"

	"github.com/hibiken/asynq"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	webhookNewsViewed func(ctx context.Context, t *asynq.Task) error
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(cfg *Config) *HandlerRegistry {
	sender := webhook.NewHTTPSender(cfg.Webhook.Timeout)

	return &HandlerRegistry{
		webhookNewsViewed: handlers.WebhookNewsViewedHandler(sender),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeWebhookNewsViewed, h.webhookNewsViewed)
}
