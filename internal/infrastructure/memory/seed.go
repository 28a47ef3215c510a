package memory

import (
	"context"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
)

// PutCategory inserts c unless its slug is taken; returns the stored id
func (s *Store) PutCategory(_ context.Context, c category.Category) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.categories {
		if existing.Slug == c.Slug {
			return id, nil
		}
	}

	s.categories[c.ID] = c
	return c.ID, nil
}

// PutPublisher inserts p unless its email is taken; returns the stored id
func (s *Store) PutPublisher(_ context.Context, p publisher.Publisher) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.publishers {
		if existing.Email == p.Email {
			return id, nil
		}
	}

	s.publishers[p.ID] = p
	return p.ID, nil
}

// PutNews inserts n unless its slug is taken
func (s *Store) PutNews(_ context.Context, n news.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.news {
		if existing.Slug == n.Slug {
			return nil
		}
	}

	s.news[n.ID] = n
	return nil
}
