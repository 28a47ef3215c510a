package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slugConstraint = "news_slug_key"

// detailColumns matches scanDetail
const detailColumns = `
	n.id, n.title, n.slug, n.content, n.excerpt, n.image_url, n.published,
	n.view_count, n.publisher_id, n.category_id, n.created_at, n.updated_at,
	p.id, p.email, p.password_hash, p.name, p.description, p.webhook_url,
	p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.description, c.created_at, c.updated_at`

const detailJoins = `
	JOIN publishers p ON p.id = n.publisher_id
	JOIN categories c ON c.id = n.category_id`

// sortColumns whitelists ORDER BY targets
var sortColumns = map[string]string{
	news.SortByCreatedAt: "n.created_at",
	news.SortByUpdatedAt: "n.updated_at",
	news.SortByTitle:     "n.title",
	news.SortByViewCount: "n.view_count",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) news.Repository {
	return &postgresRepository{pool: pool}
}

// ============================================
// WRITES
// ============================================

func (r *postgresRepository) Create(ctx context.Context, n *news.News) error {
	const query = `
		INSERT INTO news (
			id, title, slug, content, excerpt, image_url, published,
			view_count, publisher_id, category_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Slug,
		n.Content,
		n.Excerpt,
		n.ImageURL,
		n.Published,
		n.ViewCount,
		n.PublisherID,
		n.CategoryID,
		n.CreatedAt,
		n.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, slugConstraint) {
			return news.ErrSlugTaken
		}
		return fmt.Errorf("failed to create news: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, n *news.News) error {
	const query = `
		UPDATE news
		SET title = $2, slug = $3, content = $4, excerpt = $5, image_url = $6,
		    published = $7, category_id = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Slug,
		n.Content,
		n.Excerpt,
		n.ImageURL,
		n.Published,
		n.CategoryID,
		n.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, slugConstraint) {
			return news.ErrSlugTaken
		}
		return fmt.Errorf("failed to update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return news.ErrNewsNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return news.ErrNewsNotFound
	}
	return nil
}

// IncrementViewCount is a single atomic statement; concurrent views never lose an increment.
// updated_at is left alone, a view is not an edit.
func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) (*news.NewsDetail, error) {
	query := `
		WITH n AS (
			UPDATE news SET view_count = view_count + 1
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + detailColumns + `
		FROM n` + detailJoins

	return r.findOne(ctx, query, id)
}

// ============================================
// READS
// ============================================

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*news.NewsDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM news n` + detailJoins + ` WHERE n.id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*news.NewsDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM news n` + detailJoins + ` WHERE n.slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1)`
	args := []interface{}{slug}
	if excludeID != nil {
		query = `SELECT EXISTS(SELECT 1 FROM news WHERE slug = $1 AND id <> $2)`
		args = append(args, *excludeID)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, f news.Filter) ([]news.NewsDetail, error) {
	whereClause, args := buildWhereClause(f)

	query := fmt.Sprintf(`
		SELECT %s
		FROM news n %s
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, detailColumns, detailJoins, whereClause, orderByClause(f), len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list news query failed: %w", err)
	}
	defer rows.Close()

	out := []news.NewsDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		out = append(out, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news: %w", err)
	}

	return out, nil
}

func (r *postgresRepository) Count(ctx context.Context, f news.Filter) (int, error) {
	whereClause, args := buildWhereClause(f)
	query := `SELECT COUNT(*) FROM news n ` + whereClause

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

// ============================================
// HELPER METHODS
// ============================================

// buildWhereClause - Construct WHERE clause dynamically
// Returns: ("WHERE ..." or "", args)
func buildWhereClause(f news.Filter) (string, []interface{}) {
	var conditions []string
	args := []interface{}{}
	argIndex := 1

	// Case-insensitive substring on title or content
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(n.title ILIKE $%d ESCAPE '\' OR n.content ILIKE $%d ESCAPE '\')`, argIndex, argIndex))
		args = append(args, "%"+escapeLike(f.Search)+"%")
		argIndex++
	}

	if f.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("n.category_id = $%d", argIndex))
		args = append(args, *f.CategoryID)
		argIndex++
	}

	if f.PublisherID != nil {
		conditions = append(conditions, fmt.Sprintf("n.publisher_id = $%d", argIndex))
		args = append(args, *f.PublisherID)
		argIndex++
	}

	if f.Published != nil {
		conditions = append(conditions, fmt.Sprintf("n.published = $%d", argIndex))
		args = append(args, *f.Published)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderByClause falls back to newest first for unknown input. n.id keeps pages stable on ties.
func orderByClause(f news.Filter) string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[news.SortByCreatedAt]
	}

	direction := "DESC"
	if f.SortOrder == news.SortAsc {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s, n.id %s", column, direction, direction)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*news.NewsDetail, error) {
	d, err := scanDetail(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, news.ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	return d, nil
}

func scanDetail(row pgx.Row) (*news.NewsDetail, error) {
	d := &news.NewsDetail{}
	err := row.Scan(
		&d.ID, &d.Title, &d.Slug, &d.Content, &d.Excerpt, &d.ImageURL, &d.Published,
		&d.ViewCount, &d.PublisherID, &d.CategoryID, &d.CreatedAt, &d.UpdatedAt,
		&d.Publisher.ID, &d.Publisher.Email, &d.Publisher.PasswordHash, &d.Publisher.Name,
		&d.Publisher.Description, &d.Publisher.WebhookURL,
		&d.Publisher.CreatedAt, &d.Publisher.UpdatedAt,
		&d.Category.ID, &d.Category.Name, &d.Category.Slug, &d.Category.Description,
		&d.Category.CreatedAt, &d.Category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}
