package news

import (
	"context"

	"github.com/google/uuid"
)

// SlugChecker answers one uniqueness check per call
type SlugChecker interface {
	// SlugExists reports whether another article uses slug. excludeID, when set, is ignored.
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// Repository defines all data access operations for News domain
type Repository interface {
	SlugChecker

	// Create inserts the article. Returns ErrSlugTaken on slug conflict.
	Create(ctx context.Context, n *News) error

	// FindByID and FindBySlug return ErrNewsNotFound if missing
	FindByID(ctx context.Context, id uuid.UUID) (*NewsDetail, error)
	FindBySlug(ctx context.Context, slug string) (*NewsDetail, error)

	// Update writes every mutable column. Returns ErrSlugTaken on slug conflict.
	Update(ctx context.Context, n *News) error

	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount atomically adds one view and returns the updated article
	IncrementViewCount(ctx context.Context, id uuid.UUID) (*NewsDetail, error)

	List(ctx context.Context, f Filter) ([]NewsDetail, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// CategoryChecker verifies category references
type CategoryChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
