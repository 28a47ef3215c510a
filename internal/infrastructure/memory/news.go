package memory

import (
	"context"
	"sort"
	"strings"

	"newsapi-backend/internal/domains/news"

	"github.com/google/uuid"
)

type newsRepository struct {
	s *Store
}

func (r *newsRepository) Create(_ context.Context, n *news.News) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken(n.Slug, &n.ID) {
		return news.ErrSlugTaken
	}

	r.s.news[n.ID] = *n
	return nil
}

func (r *newsRepository) Update(_ context.Context, n *news.News) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.news[n.ID]
	if !ok {
		return news.ErrNewsNotFound
	}
	if r.slugTaken(n.Slug, &n.ID) {
		return news.ErrSlugTaken
	}

	existing.Title = n.Title
	existing.Slug = n.Slug
	existing.Content = n.Content
	existing.Excerpt = n.Excerpt
	existing.ImageURL = n.ImageURL
	existing.Published = n.Published
	existing.CategoryID = n.CategoryID
	existing.UpdatedAt = n.UpdatedAt
	r.s.news[n.ID] = existing
	return nil
}

func (r *newsRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.news[id]; !ok {
		return news.ErrNewsNotFound
	}
	delete(r.s.news, id)
	return nil
}

func (r *newsRepository) IncrementViewCount(_ context.Context, id uuid.UUID) (*news.NewsDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.news[id]
	if !ok {
		return nil, news.ErrNewsNotFound
	}

	n.ViewCount++
	r.s.news[id] = n

	d := r.s.detail(n)
	return &d, nil
}

func (r *newsRepository) FindByID(_ context.Context, id uuid.UUID) (*news.NewsDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.news[id]
	if !ok {
		return nil, news.ErrNewsNotFound
	}

	d := r.s.detail(n)
	return &d, nil
}

func (r *newsRepository) FindBySlug(_ context.Context, slug string) (*news.NewsDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, n := range r.s.news {
		if n.Slug == slug {
			d := r.s.detail(n)
			return &d, nil
		}
	}
	return nil, news.ErrNewsNotFound
}

func (r *newsRepository) SlugExists(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.slugTaken(slug, excludeID), nil
}

func (r *newsRepository) List(_ context.Context, f news.Filter) ([]news.NewsDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.filter(f)
	sortNews(matched, f.SortBy, f.SortOrder)

	out := []news.NewsDetail{}
	if f.Offset < 0 {
		return out, nil
	}
	for i := f.Offset; i < len(matched) && (f.Limit <= 0 || len(out) < f.Limit); i++ {
		out = append(out, r.s.detail(matched[i]))
	}
	return out, nil
}

func (r *newsRepository) Count(_ context.Context, f news.Filter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.filter(f)), nil
}

// slugTaken reports whether another article holds slug. Caller holds the lock.
func (r *newsRepository) slugTaken(slug string, excludeID *uuid.UUID) bool {
	for id, n := range r.s.news {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if n.Slug == slug {
			return true
		}
	}
	return false
}

// filter applies the same predicate as the postgres WHERE builder. Caller holds the lock.
func (r *newsRepository) filter(f news.Filter) []news.News {
	search := strings.ToLower(f.Search)

	var out []news.News
	for _, n := range r.s.news {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		if f.CategoryID != nil && n.CategoryID != *f.CategoryID {
			continue
		}
		if f.PublisherID != nil && n.PublisherID != *f.PublisherID {
			continue
		}
		if f.Published != nil && n.Published != *f.Published {
			continue
		}
		out = append(out, n)
	}
	return out
}

// sortNews orders by the requested field, ties broken by id in the same direction
func sortNews(items []news.News, sortBy, order string) {
	compare := func(a, b news.News) int {
		switch sortBy {
		case news.SortByTitle:
			// case-insensitive first, like a linguistic collation in postgres
			if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c
			}
			return strings.Compare(a.Title, b.Title)
		case news.SortByViewCount:
			return a.ViewCount - b.ViewCount
		case news.SortByUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j])
		if c == 0 {
			c = strings.Compare(items[i].ID.String(), items[j].ID.String())
		}
		if order == news.SortAsc {
			return c < 0
		}
		return c > 0
	})
}
