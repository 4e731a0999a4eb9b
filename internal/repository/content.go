package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

const contentColumns = `id, title, description, category, type, thumbnail, url, duration,
	author_name, author_avatar, published_at, related, is_openai_generated, is_static_fallback`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (domain.ContentItem, error) {
	var (
		c            domain.ContentItem
		contentType  string
		authorName   *string
		authorAvatar *string
		publishedAt  *time.Time
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &contentType, &c.Thumbnail, &c.URL,
		&c.Duration, &authorName, &authorAvatar, &publishedAt, &c.Related, &c.IsOpenAIGenerated, &c.IsStaticFallback)
	if err != nil {
		return c, err
	}
	c.Type = domain.ContentType(contentType)
	if authorName != nil && *authorName != "" {
		c.Author = &domain.Author{Name: *authorName}
		if authorAvatar != nil {
			c.Author.Avatar = *authorAvatar
		}
	}
	c.PublishedAt = publishedAt
	return c, nil
}

// ListContent returns every stored row.
func (r *Repository) ListContent(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contentColumns+`
		FROM content_items
		ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	items := []domain.ContentItem{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over content: %w", err)
	}
	return items, nil
}

func (r *Repository) GetContentByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	return r.getOne(ctx, "id", id)
}

func (r *Repository) GetContentByURL(ctx context.Context, url string) (*domain.ContentItem, error) {
	return r.getOne(ctx, "url", url)
}

func (r *Repository) getOne(ctx context.Context, column, value string) (*domain.ContentItem, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contentColumns+` FROM content_items WHERE `+column+` = $1 LIMIT 1`,
		value,
	)
	c, err := scanContent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("query content %s=%s: %w", column, value, err)
	}
	return &c, nil
}

const upsertContent = `INSERT INTO content_items (` + contentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		category = EXCLUDED.category,
		type = EXCLUDED.type,
		thumbnail = EXCLUDED.thumbnail,
		url = EXCLUDED.url,
		duration = EXCLUDED.duration,
		author_name = EXCLUDED.author_name,
		author_avatar = EXCLUDED.author_avatar,
		published_at = EXCLUDED.published_at,
		related = EXCLUDED.related,
		is_openai_generated = EXCLUDED.is_openai_generated,
		is_static_fallback = EXCLUDED.is_static_fallback,
		updated_at = now()`

// UpsertContent writes items keyed by id. Concurrent writers race with last
// write wins.
func (r *Repository) UpsertContent(ctx context.Context, items []domain.ContentItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range items {
		var authorName, authorAvatar *string
		if c.Author != nil {
			authorName, authorAvatar = &c.Author.Name, &c.Author.Avatar
		}
		category := c.Category
		if category == nil {
			category = []string{}
		}
		related := c.Related
		if related == nil {
			related = []string{}
		}
		batch.Queue(upsertContent, c.ID, c.Title, c.Description, category, string(c.Type), c.Thumbnail, c.URL,
			c.Duration, authorName, authorAvatar, c.PublishedAt, related, c.IsOpenAIGenerated, c.IsStaticFallback)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	stored := 0
	for range items {
		tag, err := br.Exec()
		if err != nil {
			return stored, fmt.Errorf("upsert content: %w", err)
		}
		stored += int(tag.RowsAffected())
	}
	return stored, nil
}

func (r *Repository) CountContent(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM content_items`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return total, nil
}
