package blogpost

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for blog post persistence
type Repository interface {
	Create(ctx context.Context, p *BlogPost) error
	Get(ctx context.Context, id string) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)
	Update(ctx context.Context, p *BlogPost) error
	List(ctx context.Context, filter *types.BlogPostFilter) ([]*BlogPost, error)
	Count(ctx context.Context, filter *types.BlogPostFilter) (int, error)

	Trash(ctx context.Context, id string, at time.Time) error
	Restore(ctx context.Context, id string) error
	ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*BlogPost, error)
	Purge(ctx context.Context, id string) error
}
