package publisher

import (
	"time"

	"github.com/google/uuid"
)

// Publisher is an account that owns news articles
type Publisher struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	WebhookURL   *string   `db:"webhook_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// HasWebhook reports whether view notifications should be sent
func (p *Publisher) HasWebhook() bool {
	return p.WebhookURL != nil && *p.WebhookURL != ""
}

// PublisherWithCount is a publisher plus the number of articles it owns
type PublisherWithCount struct {
	Publisher
	NewsCount int `db:"news_count"`
}
