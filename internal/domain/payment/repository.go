package payment

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// GetByProviderSessionID supports idempotent webhook handling
	GetByProviderSessionID(ctx context.Context, sessionID string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*Payment, error)
}

// ScheduleRepository defines the interface for payment schedule persistence
type ScheduleRepository interface {
	Create(ctx context.Context, s *Schedule) error
	Get(ctx context.Context, id string) (*Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	ListByBooking(ctx context.Context, bookingID string) ([]*Schedule, error)

	// ListOpenDueBefore returns open installments (scheduled or reminded)
	// due at or before the cutoff
	ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]*Schedule, error)
	// ListUnremindedDueBefore returns installments still in scheduled state
	// due at or before the cutoff, for reminder staging
	ListUnremindedDueBefore(ctx context.Context, cutoff time.Time) ([]*Schedule, error)
}
