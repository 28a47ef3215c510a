package repository

import (
	"context"
	"errors"
	"fmt"

	"newsapi-backend/internal/domains/publisher"
	"newsapi-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const emailConstraint = "publishers_email_key"

const publisherColumns = `id, email, password_hash, name, description, webhook_url, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) publisher.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	const query = `
		INSERT INTO publishers (` + publisherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Email,
		p.PasswordHash,
		p.Name,
		p.Description,
		p.WebhookURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, emailConstraint) {
			return publisher.ErrEmailTaken
		}
		return fmt.Errorf("failed to create publisher: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*publisher.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*publisher.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *postgresRepository) UpdateWebhook(ctx context.Context, id uuid.UUID, url string) (*publisher.Publisher, error) {
	query := `
		UPDATE publishers
		SET webhook_url = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + publisherColumns

	return r.findOne(ctx, query, id, url)
}

func (r *postgresRepository) List(ctx context.Context) ([]publisher.PublisherWithCount, error) {
	const query = `
		SELECT
			p.id, p.email, p.password_hash, p.name, p.description, p.webhook_url,
			p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM news n WHERE n.publisher_id = p.id AND n.published = true) AS news_count
		FROM publishers p
		ORDER BY p.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	var out []publisher.PublisherWithCount
	for rows.Next() {
		var item publisher.PublisherWithCount
		if err := rows.Scan(
			&item.ID,
			&item.Email,
			&item.PasswordHash,
			&item.Name,
			&item.Description,
			&item.WebhookURL,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.NewsCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate publishers: %w", err)
	}

	return out, nil
}

func (r *postgresRepository) CountNews(ctx context.Context, id uuid.UUID, publishedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM news WHERE publisher_id = $1`
	if publishedOnly {
		query += ` AND published = true`
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publisher news: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*publisher.Publisher, error) {
	p := &publisher.Publisher{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.Name,
		&p.Description,
		&p.WebhookURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to query publisher: %w", err)
	}
	return p, nil
}
