package news

import (
	"errors"
	"time"

	"newsapi-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ListNewsRequest - GET /news query string
type ListNewsRequest struct {
	Search      string `form:"search"`
	CategoryID  string `form:"categoryId"`
	PublisherID string `form:"publisherId"`
	Published   *bool  `form:"published"`
	Page        *int   `form:"page"`
	Limit       *int   `form:"limit"`
	SortBy      string `form:"sortBy"`
	SortOrder   string `form:"sortOrder"`
}

// SetDefaults fills unset fields. The public feed shows published articles unless asked otherwise.
func (r *ListNewsRequest) SetDefaults() {
	if r.Published == nil {
		published := true
		r.Published = &published
	}
	setPageDefaults(&r.Page, &r.Limit)
	if r.SortBy == "" {
		r.SortBy = SortByCreatedAt
	}
	if r.SortOrder == "" {
		r.SortOrder = SortDesc
	}
}

func (r ListNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, is.UUID.Error("categoryId must be a valid UUID")),
		validation.Field(&r.PublisherID, is.UUID.Error("publisherId must be a valid UUID")),
		validation.Field(&r.Page, intRange(1, 0, "page must be at least 1")),
		validation.Field(&r.Limit, intRange(1, MaxLimit, "limit must be between 1 and 100")),
		validation.Field(&r.SortBy, validation.In(SortableFields...).Error("sortBy must be one of createdAt, updatedAt, title, viewCount")),
		validation.Field(&r.SortOrder, validation.In(SortAsc, SortDesc).Error("sortOrder must be asc or desc")),
	)
}

// MyNewsRequest - GET /me/news query string. No published default: all of the caller's articles.
type MyNewsRequest struct {
	Published *bool `form:"published"`
	Page      *int  `form:"page"`
	Limit     *int  `form:"limit"`
}

func (r *MyNewsRequest) SetDefaults() {
	setPageDefaults(&r.Page, &r.Limit)
}

func (r MyNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, intRange(1, 0, "page must be at least 1")),
		validation.Field(&r.Limit, intRange(1, MaxLimit, "limit must be between 1 and 100")),
	)
}

func setPageDefaults(page, limit **int) {
	if *page == nil {
		p := DefaultPage
		*page = &p
	}
	if *limit == nil {
		l := DefaultLimit
		*limit = &l
	}
}

// intRange checks an optional int; max 0 means unbounded.
// ozzo's Min treats 0 as empty, which would let page=0 through.
func intRange(min, max int, msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		p, _ := value.(*int)
		if p == nil {
			return nil
		}
		if *p < min || (max > 0 && *p > max) {
			return errors.New(msg)
		}
		return nil
	})
}

// DetailRequest looks an article up by id or slug; id wins when both are set
type DetailRequest struct {
	ID   string
	Slug string
}

// CreateNewsRequest - POST /news
type CreateNewsRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Excerpt    *string `json:"excerpt"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID string  `json:"categoryId"`
	Published  bool    `json:"published"`
}

func (r CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(5, 255).Error("title must be 5-255 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.RuneLength(20, 0).Error("content must be at least 20 characters"),
		),
		validation.Field(&r.ImageURL, utils.HTTPURL.Error("imageUrl must be a valid URL")),
		validation.Field(&r.CategoryID,
			validation.Required.Error("categoryId is required"),
			is.UUID.Error("categoryId must be a valid UUID"),
		),
	)
}

// UpdateNewsRequest - PUT /news/:id. Nil fields are left unchanged.
type UpdateNewsRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID *string `json:"categoryId"`
	Published  *bool   `json:"published"`
}

func (r UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.RuneLength(5, 255).Error("title must be 5-255 characters"),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
			validation.RuneLength(20, 0).Error("content must be at least 20 characters"),
		),
		validation.Field(&r.ImageURL, utils.HTTPURL.Error("imageUrl must be a valid URL")),
		validation.Field(&r.CategoryID,
			validation.NilOrNotEmpty.Error("categoryId cannot be empty"),
			is.UUID.Error("categoryId must be a valid UUID"),
		),
	)
}

// ============================================
// RESPONSES
// ============================================

type PublisherSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type NewsResponse struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Content   string           `json:"content"`
	Excerpt   *string          `json:"excerpt"`
	ImageURL  *string          `json:"imageUrl"`
	Published bool             `json:"published"`
	ViewCount int              `json:"viewCount"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Publisher PublisherSummary `json:"publisher"`
	Category  CategorySummary  `json:"category"`
}

// NewsConnection is one page of the feed
type NewsConnection struct {
	Nodes      []NewsResponse `json:"nodes"`
	TotalCount int            `json:"totalCount"`
	PageInfo   PageInfo       `json:"pageInfo"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ToResponse(d *NewsDetail) NewsResponse {
	return NewsResponse{
		ID:        d.ID,
		Title:     d.Title,
		Slug:      d.Slug,
		Content:   d.Content,
		Excerpt:   d.Excerpt,
		ImageURL:  d.ImageURL,
		Published: d.Published,
		ViewCount: d.ViewCount,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Publisher: PublisherSummary{
			ID:          d.Publisher.ID,
			Name:        d.Publisher.Name,
			Description: d.Publisher.Description,
		},
		Category: CategorySummary{
			ID:   d.Category.ID,
			Name: d.Category.Name,
			Slug: d.Category.Slug,
		},
	}
}
