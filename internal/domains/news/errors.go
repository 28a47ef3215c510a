package news

import "newsapi-backend/internal/shared/apperror"

var (
	ErrNewsNotFound  = apperror.NotFound("News not found")
	ErrNotNewsOwner  = apperror.Forbidden("Not authorized to modify this news")
	ErrMissingLookup = apperror.Validation("Either id or slug must be provided", nil)

	// ErrSlugTaken is returned by the store when the slug unique constraint rejects a write
	ErrSlugTaken = apperror.Internal("slug already taken", nil)

	// ErrSlugExhausted means no free suffix was found within the attempt bound
	ErrSlugExhausted = apperror.Internal("could not allocate a unique slug", nil)
)
