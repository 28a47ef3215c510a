package memory

import (
	"context"
	"sort"

	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
)

type publisherRepository struct {
	s *Store
}

func (r *publisherRepository) Create(_ context.Context, p *publisher.Publisher) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.publishers {
		if existing.Email == p.Email {
			return publisher.ErrEmailTaken
		}
	}

	r.s.publishers[p.ID] = *p
	return nil
}

func (r *publisherRepository) FindByID(_ context.Context, id uuid.UUID) (*publisher.Publisher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.publishers[id]
	if !ok {
		return nil, publisher.ErrPublisherNotFound
	}
	return &p, nil
}

func (r *publisherRepository) FindByEmail(_ context.Context, email string) (*publisher.Publisher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.publishers {
		if p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, publisher.ErrPublisherNotFound
}

func (r *publisherRepository) UpdateWebhook(_ context.Context, id uuid.UUID, url string) (*publisher.Publisher, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.publishers[id]
	if !ok {
		return nil, publisher.ErrPublisherNotFound
	}

	p.WebhookURL = &url
	p.UpdatedAt = r.s.now().UTC()
	r.s.publishers[id] = p
	return &p, nil
}

func (r *publisherRepository) List(_ context.Context) ([]publisher.PublisherWithCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]publisher.PublisherWithCount, 0, len(r.s.publishers))
	for _, p := range r.s.publishers {
		id := p.ID
		out = append(out, publisher.PublisherWithCount{
			Publisher: p,
			NewsCount: r.s.countNews(func(n news.News) bool {
				return n.PublisherID == id && n.Published
			}),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *publisherRepository) CountNews(_ context.Context, id uuid.UUID, publishedOnly bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.countNews(func(n news.News) bool {
		return n.PublisherID == id && (!publishedOnly || n.Published)
	}), nil
}
