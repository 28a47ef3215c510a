package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/infrastructure/webhook"
	"newsapi-backend/internal/shared"
	"newsapi-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type newsService struct {
	repo       news.Repository
	categories news.CategoryChecker
	notifier   news.Notifier
	now        func() time.Time
}

func NewNewsService(
	repo news.Repository,
	categories news.CategoryChecker,
	notifier news.Notifier,
) news.Service {
	return &newsService{
		repo:       repo,
		categories: categories,
		notifier:   notifier,
		now:        time.Now,
	}
}

// ============================================
// FEED
// ============================================

func (s *newsService) List(ctx context.Context, req news.ListNewsRequest) (*news.NewsConnection, error) {
	// 1. VALIDATE INPUT
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	// 2. BUILD FILTER
	filter := news.Filter{
		Search:    strings.TrimSpace(req.Search),
		Published: req.Published,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.CategoryID != "" {
		id := uuid.MustParse(req.CategoryID)
		filter.CategoryID = &id
	}
	if req.PublisherID != "" {
		id := uuid.MustParse(req.PublisherID)
		filter.PublisherID = &id
	}

	// 3. QUERY PAGE + COUNT
	return s.page(ctx, filter, *req.Page, *req.Limit)
}

func (s *newsService) ListMine(ctx context.Context, caller shared.Caller, req news.MyNewsRequest) (*news.NewsConnection, error) {
	publisherID, err := caller.Require()
	if err != nil {
		return nil, err
	}

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	filter := news.Filter{
		PublisherID: &publisherID,
		Published:   req.Published,
		SortBy:      news.SortByCreatedAt,
		SortOrder:   news.SortDesc,
	}

	return s.page(ctx, filter, *req.Page, *req.Limit)
}

// page runs the page query and the count query with the same filter.
// They are not read in one snapshot; metadata may lag concurrent writes.
func (s *newsService) page(ctx context.Context, filter news.Filter, page, limit int) (*news.NewsConnection, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count news: %w", err)
	}

	conn := &news.NewsConnection{
		Nodes:      []news.NewsResponse{},
		TotalCount: total,
		PageInfo:   news.NewPageInfo(page, limit, total),
	}

	// pages past the end are empty, including ones whose offset overflows
	offset, ok := news.Offset(page, limit)
	if !ok || offset >= total {
		return conn, nil
	}
	filter.Offset = offset
	filter.Limit = limit

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	for i := range rows {
		conn.Nodes = append(conn.Nodes, news.ToResponse(&rows[i]))
	}
	return conn, nil
}

// ============================================
// DETAIL
// ============================================

func (s *newsService) Detail(ctx context.Context, req news.DetailRequest) (*news.NewsResponse, error) {
	// 1. LOOKUP
	found, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. COUNT THE VIEW
	viewed, err := s.repo.IncrementViewCount(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	// 3. NOTIFY (fire and forget)
	if viewed.Publisher.HasWebhook() {
		s.notifier.Dispatch(webhook.NewsViewed(
			*viewed.Publisher.WebhookURL,
			viewed.ID,
			viewed.Title,
			viewed.ViewCount,
			s.now(),
		))
	}

	resp := news.ToResponse(viewed)
	return &resp, nil
}

func (s *newsService) lookup(ctx context.Context, req news.DetailRequest) (*news.NewsDetail, error) {
	id := strings.TrimSpace(req.ID)
	slug := strings.TrimSpace(req.Slug)

	switch {
	case id != "":
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, news.ErrNewsNotFound
		}
		return s.repo.FindByID(ctx, parsed)
	case slug != "":
		return s.repo.FindBySlug(ctx, slug)
	default:
		return nil, news.ErrMissingLookup
	}
}

// ============================================
// MUTATIONS
// ============================================

func (s *newsService) Create(ctx context.Context, caller shared.Caller, req news.CreateNewsRequest) (*news.NewsResponse, error) {
	// 1. AUTH
	publisherID, err := caller.Require()
	if err != nil {
		return nil, err
	}

	// 2. VALIDATE INPUT
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	// 3. VALIDATE CATEGORY
	categoryID := uuid.MustParse(req.CategoryID)
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	// 4. INSERT WITH UNIQUE SLUG
	now := s.now().UTC()
	n := &news.News{
		ID:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
		PublisherID: publisherID,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.writeWithSlug(ctx, n, nil, func() error {
		return s.repo.Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("news_id", n.ID.String()).
		Str("publisher_id", publisherID.String()).
		Str("slug", n.Slug).
		Msg("news created")

	// 5. RELOAD WITH JOINS
	return s.reload(ctx, n.ID)
}

func (s *newsService) Update(ctx context.Context, caller shared.Caller, id string, req news.UpdateNewsRequest) (*news.NewsResponse, error) {
	// 1. AUTH
	publisherID, err := caller.Require()
	if err != nil {
		return nil, err
	}

	// 2. VALIDATE INPUT
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	// 3. LOAD + OWNERSHIP
	existing, err := s.owned(ctx, publisherID, id)
	if err != nil {
		return nil, err
	}

	// 4. VALIDATE CATEGORY
	n := existing.News
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		if err := s.ensureCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		n.CategoryID = categoryID
	}

	// 5. APPLY CHANGES
	titleChanged := req.Title != nil && *req.Title != existing.Title
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Excerpt != nil {
		n.Excerpt = req.Excerpt
	}
	if req.ImageURL != nil {
		n.ImageURL = req.ImageURL
	}
	if req.Published != nil {
		n.Published = *req.Published
	}
	n.UpdatedAt = s.now().UTC()

	// 6. WRITE (slug regenerated only when the title changed)
	write := func() error { return s.repo.Update(ctx, &n) }
	if titleChanged {
		err = s.writeWithSlug(ctx, &n, &n.ID, write)
	} else {
		err = write()
	}
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, n.ID)
}

func (s *newsService) Delete(ctx context.Context, caller shared.Caller, id string) (*news.DeleteResponse, error) {
	publisherID, err := caller.Require()
	if err != nil {
		return nil, err
	}

	existing, err := s.owned(ctx, publisherID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return nil, err
	}

	log.Info().
		Str("news_id", existing.ID.String()).
		Str("publisher_id", publisherID.String()).
		Msg("news deleted")

	return &news.DeleteResponse{Success: true, Message: "News deleted successfully"}, nil
}

// ============================================
// HELPERS
// ============================================

// owned loads the article and checks the caller owns it
func (s *newsService) owned(ctx context.Context, publisherID uuid.UUID, id string) (*news.NewsDetail, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, news.ErrNewsNotFound
	}

	existing, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}

	if existing.PublisherID != publisherID {
		return nil, news.ErrNotNewsOwner
	}
	return existing, nil
}

func (s *newsService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return category.ErrCategoryNotFound
	}
	return nil
}

// writeWithSlug resolves a slug for n.Title and runs write. When the store
// rejects the slug as taken the search starts over, up to maxSlugConflictRetries times.
func (s *newsService) writeWithSlug(ctx context.Context, n *news.News, excludeID *uuid.UUID, write func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxSlugConflictRetries; attempt++ {
		slug, err := resolveUniqueSlug(ctx, s.repo, n.Title, excludeID)
		if err != nil {
			return err
		}
		n.Slug = slug

		lastErr = write()
		if !errors.Is(lastErr, news.ErrSlugTaken) {
			return lastErr
		}

		log.Warn().
			Str("slug", slug).
			Int("attempt", attempt+1).
			Msg("slug taken by a concurrent write, resolving again")
	}

	return lastErr
}

func (s *newsService) reload(ctx context.Context, id uuid.UUID) (*news.NewsResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := news.ToResponse(d)
	return &resp, nil
}
