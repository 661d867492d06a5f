package booking

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Repository defines the interface for booking persistence
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id string) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	List(ctx context.Context, filter *types.BookingFilter) ([]*Booking, error)
	Count(ctx context.Context, filter *types.BookingFilter) (int, error)

	// ExistsRecent reports whether the same email already booked the same
	// retreat within the window, guarding double submits
	ExistsRecent(ctx context.Context, retreatID, email string, since time.Time) (bool, error)

	// ListHeldByRoom returns bookings holding inventory for the room
	ListHeldByRoom(ctx context.Context, roomID string) ([]*Booking, error)

	// ListConfirmedEndedBefore returns confirmed bookings whose retreat
	// ended before the cutoff, for completion processing
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*Booking, error)

	// ListCreatedBetween returns bookings created in [from, to), for the
	// weekly summary
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)
}
