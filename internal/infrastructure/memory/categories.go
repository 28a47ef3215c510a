package memory

import (
	"context"
	"sort"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"

	"github.com/google/uuid"
)

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) List(_ context.Context) ([]category.CategoryWithCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]category.CategoryWithCount, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		id := c.ID
		out = append(out, category.CategoryWithCount{
			Category: c,
			NewsCount: r.s.countNews(func(n news.News) bool {
				return n.CategoryID == id && n.Published
			}),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.categories[id]
	return ok, nil
}
