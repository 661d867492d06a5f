package room

import "context"

// Repository defines the interface for room persistence
type Repository interface {
	Create(ctx context.Context, r *Room) error
	Get(ctx context.Context, id string) (*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id string) error
	ListByRetreat(ctx context.Context, retreatID string) ([]*Room, error)

	// CountHeldBookings returns how many bookings currently hold inventory
	// (pending or confirmed) for the room
	CountHeldBookings(ctx context.Context, roomID string) (int, error)
}
