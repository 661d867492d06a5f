package blogpost

import (
	"time"

	"github.com/lib/pq"

	"github.com/wildpine/wildpine/internal/types"
)

// BlogPost is an article with a markdown body and rendered HTML
type BlogPost struct {
	ID            string         `db:"id" json:"id"`
	Slug          string         `db:"slug" json:"slug"`
	Title         string         `db:"title" json:"title"`
	Excerpt       string         `db:"excerpt" json:"excerpt"`
	Body          string         `db:"body" json:"body"`
	BodyHTML      string         `db:"body_html" json:"body_html"`
	CoverImageURL string         `db:"cover_image_url" json:"cover_image_url"`
	Tags          pq.StringArray `db:"tags" json:"tags"`

	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	types.BaseModel
}

// IsTrashed reports whether the post sits in the trash
func (p *BlogPost) IsTrashed() bool {
	return p.DeletedAt != nil
}

// IsPublic reports whether the post is visible to readers
func (p *BlogPost) IsPublic(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now) && !p.IsTrashed()
}
