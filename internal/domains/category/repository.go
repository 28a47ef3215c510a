package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// List returns all categories ordered by name with published article counts
	List(ctx context.Context) ([]CategoryWithCount, error)

	// Exists reports whether a category with the id is present
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
