package testutil

import (
	"context"

	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
)

// InMemoryRoomStore implements room.Repository. Held-booking counts come
// from the booking store, matching the SQL aggregate.
type InMemoryRoomStore struct {
	*InMemoryStore[*room.Room]
	bookings *InMemoryBookingStore
}

// NewInMemoryRoomStore creates a new in-memory room repository
func NewInMemoryRoomStore(bookings *InMemoryBookingStore) *InMemoryRoomStore {
	return &InMemoryRoomStore{
		InMemoryStore: NewInMemoryStore[*room.Room](),
		bookings:      bookings,
	}
}

func (m *InMemoryRoomStore) Create(ctx context.Context, r *room.Room) error {
	if r == nil {
		return ierr.NewError("room cannot be nil").
			WithHint("Room cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, r.ID, r)
}

func (m *InMemoryRoomStore) Get(ctx context.Context, id string) (*room.Room, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryRoomStore) Update(ctx context.Context, r *room.Room) error {
	if r == nil {
		return ierr.NewError("room cannot be nil").
			WithHint("Room cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, r.ID, r)
}

func (m *InMemoryRoomStore) Delete(ctx context.Context, id string) error {
	return m.InMemoryStore.Delete(ctx, id)
}

func (m *InMemoryRoomStore) ListByRetreat(ctx context.Context, retreatID string) ([]*room.Room, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, r *room.Room, _ interface{}) bool {
		return r.RetreatID == retreatID
	}, func(i, j *room.Room) bool {
		return i.Name < j.Name
	})
}

func (m *InMemoryRoomStore) CountHeldBookings(ctx context.Context, roomID string) (int, error) {
	held, err := m.bookings.ListHeldByRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	return len(held), nil
}
