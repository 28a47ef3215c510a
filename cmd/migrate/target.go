package main

import (
	"context"
	"database/sql"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"

	"github.com/google/uuid"
)

// pqTarget writes seed rows through database/sql. Existing rows win on conflict.
type pqTarget struct {
	db *sql.DB
}

func (t *pqTarget) PutCategory(ctx context.Context, c category.Category) (uuid.UUID, error) {
	const query = `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT categories_slug_key DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id
	`

	var id uuid.UUID
	err := t.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (t *pqTarget) PutPublisher(ctx context.Context, p publisher.Publisher) (uuid.UUID, error) {
	const query = `
		INSERT INTO publishers (id, email, password_hash, name, description, webhook_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT publishers_email_key DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`

	var id uuid.UUID
	err := t.db.QueryRowContext(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.Name, p.Description, p.WebhookURL, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (t *pqTarget) PutNews(ctx context.Context, n news.News) error {
	const query = `
		INSERT INTO news (
			id, title, slug, content, excerpt, image_url, published,
			view_count, publisher_id, category_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT ON CONSTRAINT news_slug_key DO NOTHING
	`

	_, err := t.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Slug, n.Content, n.Excerpt, n.ImageURL, n.Published,
		n.ViewCount, n.PublisherID, n.CategoryID, n.CreatedAt, n.UpdatedAt,
	)
	return err
}
