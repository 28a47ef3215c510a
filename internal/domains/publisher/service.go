package publisher

import (
	"context"
	"time"

	"newsapi-backend/internal/shared"
)

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(publisherID string) (string, time.Time, error)
}

// Service defines all business logic operations for Publisher domain
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// Me returns the caller's profile with the count of all their articles
	Me(ctx context.Context, caller shared.Caller) (*PublisherResponse, error)
	UpdateWebhook(ctx context.Context, caller shared.Caller, req UpdateWebhookRequest) (*PublisherResponse, error)

	// List returns every publisher with its published article count
	List(ctx context.Context) ([]PublisherResponse, error)
}
