package retreat

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for retreat persistence
type Repository interface {
	Create(ctx context.Context, r *Retreat) error
	Get(ctx context.Context, id string) (*Retreat, error)
	GetBySlug(ctx context.Context, slug string) (*Retreat, error)
	Update(ctx context.Context, r *Retreat) error
	List(ctx context.Context, filter *types.RetreatFilter) ([]*Retreat, error)
	Count(ctx context.Context, filter *types.RetreatFilter) (int, error)

	// Trash marks the retreat deleted at the given instant
	Trash(ctx context.Context, id string, at time.Time) error
	// Restore clears the deletion timestamp
	Restore(ctx context.Context, id string) error
	// ListTrashedBefore returns trashed retreats whose deletion timestamp
	// is at or before the cutoff
	ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*Retreat, error)
	// Purge permanently removes a trashed retreat
	Purge(ctx context.Context, id string) error
}
