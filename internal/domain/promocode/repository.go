package promocode

import (
	"context"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for promo code persistence
type Repository interface {
	Create(ctx context.Context, p *PromoCode) error
	Get(ctx context.Context, id string) (*PromoCode, error)
	// GetByCode looks a code up case-insensitively
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	Update(ctx context.Context, p *PromoCode) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.PromoCodeFilter) ([]*PromoCode, error)
	Count(ctx context.Context, filter *types.PromoCodeFilter) (int, error)

	// IncrementRedemptions atomically increments the usage counter while
	// re-checking the limit, so two concurrent bookings cannot both take
	// the last redemption. Returns ErrInvalidOperation when exhausted.
	IncrementRedemptions(ctx context.Context, id string) error
}
