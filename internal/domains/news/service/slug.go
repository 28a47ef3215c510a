package service

import (
	"context"
	"fmt"

	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/shared/utils"

	"github.com/google/uuid"
)

const (
	// maxSlugAttempts bounds the checks for one title: base, base-1 ... base-(max-1)
	maxSlugAttempts = 1000

	// fallbackSlug is used when a title has no slug-able characters
	fallbackSlug = "news"

	// maxSlugConflictRetries is how many times a write rejected by the slug
	// unique constraint restarts the search
	maxSlugConflictRetries = 3
)

// resolveUniqueSlug returns the first free slug among base, base-1, base-2...
// excludeID skips the article being updated so it can keep its own slug.
// Two concurrent callers may pick the same value; the store constraint decides.
func resolveUniqueSlug(ctx context.Context, checker news.SlugChecker, title string, excludeID *uuid.UUID) (string, error) {
	base := utils.ToSlug(title)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		exists, err := checker.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", news.ErrSlugExhausted.Wrap(fmt.Errorf("base %q after %d attempts", base, maxSlugAttempts))
}
