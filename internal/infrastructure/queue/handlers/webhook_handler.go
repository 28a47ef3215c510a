package handlers

import (
	"context"
	"fmt"

	"newsapi-backend/internal/infrastructure/webhook"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// WebhookNewsViewedHandler makes the single delivery attempt for a queued notification.
// Delivery failures are logged and reported as success so asynq never retries them.
func WebhookNewsViewedHandler(sender webhook.Deliverer) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := webhook.ParseTask(t)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry) // bad payload, skip retry
		}

		if err := sender.Deliver(ctx, n); err != nil {
			log.Warn().
				Err(err).
				Str("url", n.URL).
				Str("news_id", n.Payload.Data.NewsID).
				Msg("[Worker] webhook delivery failed")
			return nil
		}

		log.Info().
			Str("url", n.URL).
			Str("news_id", n.Payload.Data.NewsID).
			Msg("[Worker] webhook delivered")
		return nil
	}
}
