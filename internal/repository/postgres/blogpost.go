package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/blogpost"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type blogPostRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBlogPostRepository(db *postgres.DB, logger *logger.Logger) blogpost.Repository {
	return &blogPostRepository{db: db, logger: logger}
}

const blogPostColumns = `
	id, slug, title, excerpt, body, body_html, cover_image_url, tags,
	published_at, deleted_at, status, created_at, updated_at, created_by, updated_by
`

func (r *blogPostRepository) Create(ctx context.Context, m *blogpost.BlogPost) error {
	query := `
	INSERT INTO blog_posts (` + blogPostColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Slug, m.Title, m.Excerpt, m.Body, m.BodyHTML,
		m.CoverImageURL, m.Tags, m.PublishedAt, m.DeletedAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A blog post with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create blog post").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *blogPostRepository) Get(ctx context.Context, id string) (*blogpost.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1 AND status != $2`

	var m blogpost.BlogPost
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("blog post not found").
				WithHintf("Blog post %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get blog post").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *blogPostRepository) GetBySlug(ctx context.Context, slug string) (*blogpost.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + `
	FROM blog_posts
	WHERE slug = $1 AND deleted_at IS NULL AND status != $2`

	var m blogpost.BlogPost
	err := r.db.GetContext(ctx, &m, query, slug, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("blog post not found").
				WithHintf("Blog post %s was not found", slug).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get blog post").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *blogPostRepository) Update(ctx context.Context, m *blogpost.BlogPost) error {
	query := `
	UPDATE blog_posts SET
		slug = $2, title = $3, excerpt = $4, body = $5, body_html = $6,
		cover_image_url = $7, tags = $8, published_at = $9,
		status = $10, updated_at = $11, updated_by = $12
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Slug, m.Title, m.Excerpt, m.Body, m.BodyHTML,
		m.CoverImageURL, m.Tags, m.PublishedAt,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A blog post with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update blog post").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "blog post")
}

func (r *blogPostRepository) List(ctx context.Context, filter *types.BlogPostFilter) ([]*blogpost.BlogPost, error) {
	where, args := blogPostWhere(filter)
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "created_at"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var posts []*blogpost.BlogPost
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list blog posts").
			Mark(ierr.ErrDatabase)
	}
	return posts, nil
}

func (r *blogPostRepository) Count(ctx context.Context, filter *types.BlogPostFilter) (int, error) {
	where, args := blogPostWhere(filter)
	query := `SELECT COUNT(*) FROM blog_posts ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count blog posts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func blogPostWhere(filter *types.BlogPostFilter) (string, []interface{}) {
	args := []interface{}{types.StatusDeleted}
	where := `WHERE status != $1`
	if filter.Trashed {
		where += ` AND deleted_at IS NOT NULL`
	} else {
		where += ` AND deleted_at IS NULL`
	}
	if filter.PublishedOnly {
		where += ` AND published_at IS NOT NULL AND published_at <= NOW()`
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where += fmt.Sprintf(` AND $%d = ANY(tags)`, len(args))
	}
	return where, args
}

func (r *blogPostRepository) Trash(ctx context.Context, id string, at time.Time) error {
	query := `
	UPDATE blog_posts
	SET deleted_at = $2, updated_at = $2, updated_by = $3
	WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to trash blog post").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "blog post")
}

func (r *blogPostRepository) Restore(ctx context.Context, id string) error {
	query := `
	UPDATE blog_posts
	SET deleted_at = NULL, updated_at = NOW(), updated_by = $2
	WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.ExecContext(ctx, query, id, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to restore blog post").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "blog post")
}

func (r *blogPostRepository) ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*blogpost.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + `
	FROM blog_posts
	WHERE deleted_at IS NOT NULL AND deleted_at <= $1`

	var posts []*blogpost.BlogPost
	err := r.db.SelectContext(ctx, &posts, query, cutoff)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list trashed blog posts").
			Mark(ierr.ErrDatabase)
	}
	return posts, nil
}

func (r *blogPostRepository) Purge(ctx context.Context, id string) error {
	query := `DELETE FROM blog_posts WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to purge blog post").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "blog post")
}
