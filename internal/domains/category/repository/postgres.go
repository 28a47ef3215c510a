package repository

import (
	"context"
	"fmt"

	"newsapi-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context) ([]category.CategoryWithCount, error) {
	const query = `
		SELECT
			c.id, c.name, c.slug, c.description, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM news n WHERE n.category_id = c.id AND n.published = true) AS news_count
		FROM categories c
		ORDER BY c.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []category.CategoryWithCount
	for rows.Next() {
		var item category.CategoryWithCount
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Slug,
			&item.Description,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.NewsCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return out, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}
