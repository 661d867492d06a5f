package testutil

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory payment repository
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func (m *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if p.ProviderSessionID != "" {
		if existing, _ := m.GetByProviderSessionID(ctx, p.ProviderSessionID); existing != nil {
			return ierr.NewError("duplicate provider session").
				WithHint("A payment for this checkout session already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return m.InMemoryStore.Create(ctx, p.ID, p)
}

func (m *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryPaymentStore) GetByProviderSessionID(ctx context.Context, sessionID string) (*payment.Payment, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, p := range all {
		if p.ProviderSessionID == sessionID {
			return p, nil
		}
	}
	return nil, ierr.NewError("payment not found").
		WithHint("Payment was not found").
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryPaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, p.ID, p)
}

func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}
	if f.BookingID != "" && p.BookingID != f.BookingID {
		return false
	}
	if f.PaymentStatus != nil && p.PaymentStatus != *f.PaymentStatus {
		return false
	}
	return true
}

func (m *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	items, err := m.InMemoryStore.List(ctx, filter, paymentFilterFn, func(i, j *payment.Payment) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, paymentFilterFn)
}

func (m *InMemoryPaymentStore) ListByBooking(ctx context.Context, bookingID string) ([]*payment.Payment, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *payment.Payment, _ interface{}) bool {
		return p.BookingID == bookingID
	}, func(i, j *payment.Payment) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}

// InMemoryScheduleStore implements payment.ScheduleRepository
type InMemoryScheduleStore struct {
	*InMemoryStore[*payment.Schedule]
}

// NewInMemoryScheduleStore creates a new in-memory payment schedule repository
func NewInMemoryScheduleStore() *InMemoryScheduleStore {
	return &InMemoryScheduleStore{
		InMemoryStore: NewInMemoryStore[*payment.Schedule](),
	}
}

func (m *InMemoryScheduleStore) Create(ctx context.Context, s *payment.Schedule) error {
	if s == nil {
		return ierr.NewError("schedule cannot be nil").
			WithHint("Schedule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, s.ID, s)
}

func (m *InMemoryScheduleStore) Get(ctx context.Context, id string) (*payment.Schedule, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryScheduleStore) Update(ctx context.Context, s *payment.Schedule) error {
	if s == nil {
		return ierr.NewError("schedule cannot be nil").
			WithHint("Schedule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, s.ID, s)
}

func (m *InMemoryScheduleStore) ListByBooking(ctx context.Context, bookingID string) ([]*payment.Schedule, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, s *payment.Schedule, _ interface{}) bool {
		return s.BookingID == bookingID
	}, func(i, j *payment.Schedule) bool {
		return i.DueDate.Before(j.DueDate)
	})
}

func (m *InMemoryScheduleStore) ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]*payment.Schedule, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, s *payment.Schedule, _ interface{}) bool {
		return s.ScheduleStatus.IsOpen() && !s.DueDate.After(cutoff)
	}, func(i, j *payment.Schedule) bool {
		return i.DueDate.Before(j.DueDate)
	})
}

func (m *InMemoryScheduleStore) ListUnremindedDueBefore(ctx context.Context, cutoff time.Time) ([]*payment.Schedule, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, s *payment.Schedule, _ interface{}) bool {
		return s.ScheduleStatus == types.ScheduleStatusScheduled && !s.DueDate.After(cutoff)
	}, func(i, j *payment.Schedule) bool {
		return i.DueDate.Before(j.DueDate)
	})
}
