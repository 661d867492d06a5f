package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/wildpine/wildpine/internal/domain/waitlist"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryWaitlistStore implements waitlist.Repository
type InMemoryWaitlistStore struct {
	*InMemoryStore[*waitlist.Entry]
}

// NewInMemoryWaitlistStore creates a new in-memory waitlist repository
func NewInMemoryWaitlistStore() *InMemoryWaitlistStore {
	return &InMemoryWaitlistStore{
		InMemoryStore: NewInMemoryStore[*waitlist.Entry](),
	}
}

func (m *InMemoryWaitlistStore) Create(ctx context.Context, e *waitlist.Entry) error {
	if e == nil {
		return ierr.NewError("entry cannot be nil").
			WithHint("Entry cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, e.ID, e)
}

func (m *InMemoryWaitlistStore) Get(ctx context.Context, id string) (*waitlist.Entry, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryWaitlistStore) Update(ctx context.Context, e *waitlist.Entry) error {
	if e == nil {
		return ierr.NewError("entry cannot be nil").
			WithHint("Entry cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, e.ID, e)
}

func waitlistFilterFn(ctx context.Context, e *waitlist.Entry, filter interface{}) bool {
	f, ok := filter.(*types.WaitlistFilter)
	if !ok || f == nil {
		return true
	}
	if f.RetreatID != "" && e.RetreatID != f.RetreatID {
		return false
	}
	if f.RoomID != "" && (e.RoomID == nil || *e.RoomID != f.RoomID) {
		return false
	}
	if f.WaitlistStatus != nil && e.WaitlistStatus != *f.WaitlistStatus {
		return false
	}
	return true
}

func (m *InMemoryWaitlistStore) List(ctx context.Context, filter *types.WaitlistFilter) ([]*waitlist.Entry, error) {
	items, err := m.InMemoryStore.List(ctx, filter, waitlistFilterFn, func(i, j *waitlist.Entry) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryWaitlistStore) Count(ctx context.Context, filter *types.WaitlistFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, waitlistFilterFn)
}

func (m *InMemoryWaitlistStore) Exists(ctx context.Context, retreatID, email string) (bool, error) {
	items, err := m.InMemoryStore.List(ctx, nil, func(ctx context.Context, e *waitlist.Entry, _ interface{}) bool {
		return e.RetreatID == retreatID &&
			strings.EqualFold(e.Email, email) &&
			(e.WaitlistStatus == types.WaitlistStatusWaiting || e.WaitlistStatus == types.WaitlistStatusNotified)
	}, nil)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func (m *InMemoryWaitlistStore) OldestWaiting(ctx context.Context, retreatID string, roomID *string) (*waitlist.Entry, error) {
	items, err := m.InMemoryStore.List(ctx, nil, func(ctx context.Context, e *waitlist.Entry, _ interface{}) bool {
		if e.RetreatID != retreatID || e.WaitlistStatus != types.WaitlistStatusWaiting {
			return false
		}
		if roomID != nil && e.RoomID != nil && *e.RoomID != *roomID {
			return false
		}
		return true
	}, func(i, j *waitlist.Entry) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (m *InMemoryWaitlistStore) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return m.InMemoryStore.Count(ctx, nil, func(ctx context.Context, e *waitlist.Entry, _ interface{}) bool {
		return !e.CreatedAt.Before(since)
	})
}
