package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peakplay/coaching-api/internal/models"
)

// BlogRepository persists blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository constructs the repository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, title, slug, excerpt, content, tags, published, published_at, created_at, updated_at`

// Create inserts a new post.
func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	const query = `INSERT INTO blog_posts (id, title, slug, excerpt, content, tags, published, published_at, created_at, updated_at)
VALUES (:id, :title, :slug, :excerpt, :content, :tags, :published, :published_at, :created_at, :updated_at)`
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create blog post: %w", err)
	}
	return nil
}

// FindByID fetches a post by id.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE id = $1`, blogColumns)
	var post models.BlogPost
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug fetches a post by slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE slug = $1`, blogColumns)
	var post models.BlogPost
	if err := r.db.GetContext(ctx, &post, query, slug); err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugExists reports whether a slug is taken by a different post.
func (r *BlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = $1 AND id <> $2`, slug, excludeID); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// List returns posts matching the filter with a total count.
func (r *BlogRepository) List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, int, error) {
	var clauses []string
	var args []interface{}

	if filter.Published != nil {
		args = append(args, *filter.Published)
		clauses = append(clauses, fmt.Sprintf("published = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(content) LIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM blog_posts"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count blog posts: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM blog_posts%s ORDER BY published_at DESC NULLS LAST, created_at DESC", blogColumns, where)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var posts []models.BlogPost
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, total, nil
}

// ListPublished returns slug and publish time for every published post,
// used to derive the sitemap.
func (r *BlogRepository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	const query = `SELECT id, title, slug, published, published_at, created_at, updated_at
FROM blog_posts WHERE published = TRUE ORDER BY published_at DESC`
	var posts []models.BlogPost
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// Update writes the mutable post fields.
func (r *BlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	const query = `UPDATE blog_posts
SET title = :title, slug = :slug, excerpt = :excerpt, content = :content, tags = :tags,
    published = :published, published_at = :published_at, updated_at = :updated_at
WHERE id = :id`
	post.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	return nil
}

// Delete removes a post.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return nil
}
