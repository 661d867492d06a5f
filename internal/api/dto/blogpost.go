package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wildpine/wildpine/internal/domain/blogpost"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// CreateBlogPostRequest represents the request payload for creating a blog post
type CreateBlogPostRequest struct {
	Title         string     `json:"title" binding:"required"`
	Slug          string     `json:"slug,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Body          string     `json:"body" binding:"required"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// UpdateBlogPostRequest represents the request payload for updating a blog post
type UpdateBlogPostRequest struct {
	Title         *string    `json:"title,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Body          *string    `json:"body,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// BlogPostResponse represents the blog post response structure
type BlogPostResponse struct {
	*blogpost.BlogPost
}

func (r *CreateBlogPostRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid blog post payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToBlogPost converts the create request to a domain blog post.
// BodyHTML is rendered by the service.
func (r *CreateBlogPostRequest) ToBlogPost(ctx context.Context) *blogpost.BlogPost {
	return &blogpost.BlogPost{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BLOG_POST),
		Slug:          r.Slug,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		Body:          r.Body,
		CoverImageURL: r.CoverImageURL,
		Tags:          r.Tags,
		PublishedAt:   r.PublishedAt,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// ListBlogPostsResponse represents a paginated list of blog posts
type ListBlogPostsResponse = types.ListResponse[*BlogPostResponse]
