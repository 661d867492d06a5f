package waitlist

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for waitlist persistence
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter *types.WaitlistFilter) ([]*Entry, error)
	Count(ctx context.Context, filter *types.WaitlistFilter) (int, error)

	// Exists reports whether the email already waits on the retreat
	Exists(ctx context.Context, retreatID, email string) (bool, error)

	// OldestWaiting returns the longest-waiting entry for the retreat,
	// optionally narrowed to a room. Nil when nobody waits.
	OldestWaiting(ctx context.Context, retreatID string, roomID *string) (*Entry, error)

	// CountCreatedSince counts joins at or after the instant, for the
	// weekly digest
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}
