package news

import (
	"context"

	"newsapi-backend/internal/infrastructure/webhook"
	"newsapi-backend/internal/shared"
)

// Notifier fires view notifications without waiting on them
type Notifier interface {
	Dispatch(n webhook.Notification)
}

// Service defines all business logic operations for News domain
type Service interface {
	// List is the public feed
	List(ctx context.Context, req ListNewsRequest) (*NewsConnection, error)

	// ListMine is the caller's own articles, newest first
	ListMine(ctx context.Context, caller shared.Caller, req MyNewsRequest) (*NewsConnection, error)

	// Detail counts a view and notifies the owner's webhook
	Detail(ctx context.Context, req DetailRequest) (*NewsResponse, error)

	Create(ctx context.Context, caller shared.Caller, req CreateNewsRequest) (*NewsResponse, error)
	Update(ctx context.Context, caller shared.Caller, id string, req UpdateNewsRequest) (*NewsResponse, error)
	Delete(ctx context.Context, caller shared.Caller, id string) (*DeleteResponse, error)
}
