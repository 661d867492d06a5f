package subscriber

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for subscriber persistence
type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	Get(ctx context.Context, id string) (*Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	Update(ctx context.Context, s *Subscriber) error
	List(ctx context.Context, filter *types.SubscriberFilter) ([]*Subscriber, error)
	Count(ctx context.Context, filter *types.SubscriberFilter) (int, error)

	// ListMailable returns confirmed, not-unsubscribed recipients
	ListMailable(ctx context.Context) ([]*Subscriber, error)

	// CountCreatedSince counts signups at or after the instant, for the
	// weekly digest
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}
