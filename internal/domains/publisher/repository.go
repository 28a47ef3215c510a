package publisher

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines all data access operations for Publisher domain
type Repository interface {
	// Create inserts a new publisher. Returns ErrEmailTaken on duplicate email.
	Create(ctx context.Context, p *Publisher) error

	// FindByID returns ErrPublisherNotFound if missing
	FindByID(ctx context.Context, id uuid.UUID) (*Publisher, error)

	// FindByEmail returns ErrPublisherNotFound if missing
	FindByEmail(ctx context.Context, email string) (*Publisher, error)

	// UpdateWebhook sets the webhook URL and returns the updated row
	UpdateWebhook(ctx context.Context, id uuid.UUID, url string) (*Publisher, error)

	// List returns every publisher ordered by name, counting published articles only
	List(ctx context.Context) ([]PublisherWithCount, error)

	// CountNews counts the publisher's articles; publishedOnly restricts to published ones
	CountNews(ctx context.Context, id uuid.UUID, publishedOnly bool) (int, error)
}
