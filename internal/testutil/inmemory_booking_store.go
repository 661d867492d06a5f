package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/wildpine/wildpine/internal/domain/booking"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryBookingStore implements booking.Repository. It holds a reference
// to the retreat store so date-bound queries can resolve retreat dates the
// way the SQL joins do.
type InMemoryBookingStore struct {
	*InMemoryStore[*booking.Booking]
	retreats *InMemoryRetreatStore
}

// NewInMemoryBookingStore creates a new in-memory booking repository
func NewInMemoryBookingStore(retreats *InMemoryRetreatStore) *InMemoryBookingStore {
	return &InMemoryBookingStore{
		InMemoryStore: NewInMemoryStore[*booking.Booking](),
		retreats:      retreats,
	}
}

func (m *InMemoryBookingStore) Create(ctx context.Context, b *booking.Booking) error {
	if b == nil {
		return ierr.NewError("booking cannot be nil").
			WithHint("Booking cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, b.ID, b)
}

func (m *InMemoryBookingStore) Get(ctx context.Context, id string) (*booking.Booking, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryBookingStore) Update(ctx context.Context, b *booking.Booking) error {
	if b == nil {
		return ierr.NewError("booking cannot be nil").
			WithHint("Booking cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, b.ID, b)
}

func bookingFilterFn(ctx context.Context, b *booking.Booking, filter interface{}) bool {
	f, ok := filter.(*types.BookingFilter)
	if !ok || f == nil {
		return true
	}
	if f.RetreatID != "" && b.RetreatID != f.RetreatID {
		return false
	}
	if f.RoomID != "" && b.RoomID != f.RoomID {
		return false
	}
	if f.CustomerEmail != "" && !strings.EqualFold(b.CustomerEmail, f.CustomerEmail) {
		return false
	}
	if f.BookingStatus != nil && b.BookingStatus != *f.BookingStatus {
		return false
	}
	return true
}

func (m *InMemoryBookingStore) List(ctx context.Context, filter *types.BookingFilter) ([]*booking.Booking, error) {
	items, err := m.InMemoryStore.List(ctx, filter, bookingFilterFn, func(i, j *booking.Booking) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryBookingStore) Count(ctx context.Context, filter *types.BookingFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, bookingFilterFn)
}

func (m *InMemoryBookingStore) ExistsRecent(ctx context.Context, retreatID, email string, since time.Time) (bool, error) {
	items, err := m.InMemoryStore.List(ctx, nil, func(ctx context.Context, b *booking.Booking, _ interface{}) bool {
		return b.RetreatID == retreatID &&
			strings.EqualFold(b.CustomerEmail, email) &&
			b.BookingStatus.HoldsInventory() &&
			!b.CreatedAt.Before(since)
	}, nil)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func (m *InMemoryBookingStore) ListHeldByRoom(ctx context.Context, roomID string) ([]*booking.Booking, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, b *booking.Booking, _ interface{}) bool {
		return b.RoomID == roomID && b.BookingStatus.HoldsInventory()
	}, nil)
}

func (m *InMemoryBookingStore) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, b *booking.Booking, _ interface{}) bool {
		if b.BookingStatus != types.BookingStatusConfirmed {
			return false
		}
		r, err := m.retreats.Get(ctx, b.RetreatID)
		if err != nil {
			return false
		}
		return r.EndDate.Before(cutoff)
	}, nil)
}

func (m *InMemoryBookingStore) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, b *booking.Booking, _ interface{}) bool {
		return !b.CreatedAt.Before(from) && b.CreatedAt.Before(to)
	}, nil)
}
