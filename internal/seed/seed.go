// Package seed loads the demo categories, publishers and articles.
// Records already present by slug or email are left untouched, so Run is safe to repeat.
package seed

import (
	"context"
	"fmt"
	"time"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DemoPassword is the plaintext password of every seeded publisher
const DemoPassword = "password123"

// Target receives seed records. The Put methods insert when the unique key is
// free and return the id of the stored row either way.
type Target interface {
	PutCategory(ctx context.Context, c category.Category) (uuid.UUID, error)
	PutPublisher(ctx context.Context, p publisher.Publisher) (uuid.UUID, error)
	PutNews(ctx context.Context, n news.News) error
}

// Hasher digests the demo password
type Hasher interface {
	Hash(plaintext string) (string, error)
}

type categorySeed struct {
	name, slug, description string
}

type publisherSeed struct {
	email, name, description, webhookURL string
}

type newsSeed struct {
	title, slug, content, excerpt, imageURL string
	published                               bool
	publisher                               string // email
	category                                string // slug
}

var categories = []categorySeed{
	{"Technology", "technology", "Latest in technology and innovation"},
	{"Business", "business", "Business and finance news"},
	{"Sports", "sports", "Sports updates and highlights"},
	{"Entertainment", "entertainment", "Entertainment and celebrity news"},
}

var publishers = []publisherSeed{
	{"techpub@example.com", "Tech Publishing Co.", "Leading technology news publisher", "https://webhook.site/tech-publisher"},
	{"newscorp@example.com", "Global News Corporation", "International news coverage", "https://webhook.site/global-news"},
}

var articles = []newsSeed{
	{
		title:     "AI Revolution in 2025: What to Expect",
		slug:      "ai-revolution-2025",
		content:   "Artificial Intelligence continues to reshape industries across the globe. From healthcare to finance, AI is transforming how we work and live. This comprehensive guide explores the latest developments and what to expect in the coming years.",
		excerpt:   "The latest developments in AI technology",
		imageURL:  "https://images.unsplash.com/photo-1677442136019-21780ecad995",
		published: true,
		publisher: "techpub@example.com",
		category:  "technology",
	},
	{
		title:     "Global Markets Hit Record Highs",
		slug:      "global-markets-record-highs",
		content:   "Stock markets around the world reached new peaks today as investors showed renewed confidence in the global economy. The surge was driven by strong corporate earnings and positive economic indicators.",
		excerpt:   "Economic indicators show strong growth",
		imageURL:  "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3",
		published: true,
		publisher: "newscorp@example.com",
		category:  "business",
	},
	{
		title:     "Championship Finals: An Epic Showdown",
		slug:      "championship-finals-epic-showdown",
		content:   "The most anticipated sports event of the year is finally here. Two powerhouse teams will face off in what promises to be an unforgettable championship final. Expert analysis and predictions inside.",
		excerpt:   "Teams prepare for the ultimate battle",
		imageURL:  "https://images.unsplash.com/photo-1461896836934-ffe607ba8211",
		published: true,
		publisher: "newscorp@example.com",
		category:  "sports",
	},
	{
		title:     "New Blockbuster Breaks Box Office Records",
		slug:      "blockbuster-breaks-records",
		content:   "The latest superhero film shattered expectations at the box office this weekend, becoming the highest-grossing opening of the year. Audiences worldwide are flocking to theaters to experience the epic conclusion to the beloved franchise.",
		excerpt:   "Cinema audiences flock to theaters",
		imageURL:  "https://images.unsplash.com/photo-1536440136628-849c177e76a1",
		published: true,
		publisher: "techpub@example.com",
		category:  "entertainment",
	},
	{
		title:     "Draft: Upcoming Tech Conference Announcement",
		slug:      "draft-tech-conference-announcement",
		content:   "We are excited to announce our annual tech conference, bringing together industry leaders, innovators, and developers from around the world. Stay tuned for more details on speakers and sessions.",
		excerpt:   "Save the date for the biggest tech event",
		published: false,
		publisher: "techpub@example.com",
		category:  "technology",
	},
}

// Run writes the demo data set into t
func Run(ctx context.Context, t Target, hasher Hasher) error {
	now := time.Now().UTC()

	// 1. CATEGORIES
	categoryIDs := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		description := c.description
		id, err := t.PutCategory(ctx, category.Category{
			ID:          uuid.New(),
			Name:        c.name,
			Slug:        c.slug,
			Description: &description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
	}
	log.Info().Int("count", len(categories)).Msg("categories seeded")

	// 2. PUBLISHERS
	digest, err := hasher.Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	publisherIDs := make(map[string]uuid.UUID, len(publishers))
	for _, p := range publishers {
		description, webhookURL := p.description, p.webhookURL
		id, err := t.PutPublisher(ctx, publisher.Publisher{
			ID:           uuid.New(),
			Email:        p.email,
			PasswordHash: digest,
			Name:         p.name,
			Description:  &description,
			WebhookURL:   &webhookURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seed publisher %s: %w", p.email, err)
		}
		publisherIDs[p.email] = id
	}
	log.Info().Int("count", len(publishers)).Msg("publishers seeded")

	// 3. ARTICLES
	for _, a := range articles {
		n := news.News{
			ID:          uuid.New(),
			Title:       a.title,
			Slug:        a.slug,
			Content:     a.content,
			Excerpt:     optional(a.excerpt),
			ImageURL:    optional(a.imageURL),
			Published:   a.published,
			PublisherID: publisherIDs[a.publisher],
			CategoryID:  categoryIDs[a.category],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.PutNews(ctx, n); err != nil {
			return fmt.Errorf("seed news %s: %w", a.slug, err)
		}
	}
	log.Info().Int("count", len(articles)).Msg("news seeded")

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
