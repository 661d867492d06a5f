package policy

import "context"

// Repository defines the interface for policy persistence
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	Get(ctx context.Context, id string) (*Policy, error)
	GetBySlug(ctx context.Context, slug string) (*Policy, error)
	Update(ctx context.Context, p *Policy) error
	List(ctx context.Context) ([]*Policy, error)
}
