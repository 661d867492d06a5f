package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/wildpine/wildpine/internal/domain/subscriber"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemorySubscriberStore implements subscriber.Repository
type InMemorySubscriberStore struct {
	*InMemoryStore[*subscriber.Subscriber]
}

// NewInMemorySubscriberStore creates a new in-memory subscriber repository
func NewInMemorySubscriberStore() *InMemorySubscriberStore {
	return &InMemorySubscriberStore{
		InMemoryStore: NewInMemoryStore[*subscriber.Subscriber](),
	}
}

func (m *InMemorySubscriberStore) Create(ctx context.Context, s *subscriber.Subscriber) error {
	if s == nil {
		return ierr.NewError("subscriber cannot be nil").
			WithHint("Subscriber cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if existing, _ := m.GetByEmail(ctx, s.Email); existing != nil {
		return ierr.NewError("subscriber already exists").
			WithHint("This email is already subscribed").
			Mark(ierr.ErrAlreadyExists)
	}
	return m.InMemoryStore.Create(ctx, s.ID, s)
}

func (m *InMemorySubscriberStore) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemorySubscriberStore) GetByEmail(ctx context.Context, email string) (*subscriber.Subscriber, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, s := range all {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, ierr.NewError("subscriber not found").
		WithHint("Subscriber was not found").
		Mark(ierr.ErrNotFound)
}

func (m *InMemorySubscriberStore) GetByToken(ctx context.Context, token string) (*subscriber.Subscriber, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, s := range all {
		if s.Token == token {
			return s, nil
		}
	}
	return nil, ierr.NewError("subscriber not found").
		WithHint("Invalid or expired token").
		Mark(ierr.ErrNotFound)
}

func (m *InMemorySubscriberStore) Update(ctx context.Context, s *subscriber.Subscriber) error {
	if s == nil {
		return ierr.NewError("subscriber cannot be nil").
			WithHint("Subscriber cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, s.ID, s)
}

func subscriberFilterFn(ctx context.Context, s *subscriber.Subscriber, filter interface{}) bool {
	f, ok := filter.(*types.SubscriberFilter)
	if !ok || f == nil {
		return true
	}
	if f.ConfirmedOnly && s.ConfirmedAt == nil {
		return false
	}
	return true
}

func (m *InMemorySubscriberStore) List(ctx context.Context, filter *types.SubscriberFilter) ([]*subscriber.Subscriber, error) {
	items, err := m.InMemoryStore.List(ctx, filter, subscriberFilterFn, func(i, j *subscriber.Subscriber) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemorySubscriberStore) Count(ctx context.Context, filter *types.SubscriberFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, subscriberFilterFn)
}

func (m *InMemorySubscriberStore) ListMailable(ctx context.Context) ([]*subscriber.Subscriber, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, s *subscriber.Subscriber, _ interface{}) bool {
		return s.IsMailable()
	}, nil)
}

func (m *InMemorySubscriberStore) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return m.InMemoryStore.Count(ctx, nil, func(ctx context.Context, s *subscriber.Subscriber, _ interface{}) bool {
		return !s.CreatedAt.Before(since)
	})
}
