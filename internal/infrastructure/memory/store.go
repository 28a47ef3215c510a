// Package memory is a process-local store with the same uniqueness rules as
// the postgres schema. Selected by STORE_DRIVER=memory and used by tests.
package memory

import (
	"sync"
	"time"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
)

// Store holds every table behind one lock
type Store struct {
	mu         sync.RWMutex
	publishers map[uuid.UUID]publisher.Publisher
	categories map[uuid.UUID]category.Category
	news       map[uuid.UUID]news.News
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		publishers: make(map[uuid.UUID]publisher.Publisher),
		categories: make(map[uuid.UUID]category.Category),
		news:       make(map[uuid.UUID]news.News),
		now:        time.Now,
	}
}

func (s *Store) Publishers() publisher.Repository { return &publisherRepository{s: s} }
func (s *Store) Categories() category.Repository  { return &categoryRepository{s: s} }
func (s *Store) News() news.Repository            { return &newsRepository{s: s} }

// detail joins an article with its owner and category. Caller holds the lock.
func (s *Store) detail(n news.News) news.NewsDetail {
	return news.NewsDetail{
		News:      n,
		Publisher: s.publishers[n.PublisherID],
		Category:  s.categories[n.CategoryID],
	}
}

// countNews counts articles matching keep. Caller holds the lock.
func (s *Store) countNews(keep func(n news.News) bool) int {
	count := 0
	for _, n := range s.news {
		if keep(n) {
			count++
		}
	}
	return count
}
