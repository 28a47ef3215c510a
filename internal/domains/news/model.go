package news

import (
	"time"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
)

// News is one article. PublisherID never changes after creation.
type News struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Content     string    `db:"content"`
	Excerpt     *string   `db:"excerpt"`
	ImageURL    *string   `db:"image_url"`
	Published   bool      `db:"published"`
	ViewCount   int       `db:"view_count"`
	PublisherID uuid.UUID `db:"publisher_id"`
	CategoryID  uuid.UUID `db:"category_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewsDetail is an article joined with its owner and category
type NewsDetail struct {
	News
	Publisher publisher.Publisher
	Category  category.Category
}

// Filter is the store-level query for the feed.
// List and Count must apply the same predicate.
type Filter struct {
	Search      string
	CategoryID  *uuid.UUID
	PublisherID *uuid.UUID
	Published   *bool
	SortBy      string // one of SortableFields
	SortOrder   string // asc, desc
	Offset      int
	Limit       int
}

// Sort fields accepted by the feed
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByTitle     = "title"
	SortByViewCount = "viewCount"

	SortAsc  = "asc"
	SortDesc = "desc"
)

var SortableFields = []interface{}{SortByCreatedAt, SortByUpdatedAt, SortByTitle, SortByViewCount}
