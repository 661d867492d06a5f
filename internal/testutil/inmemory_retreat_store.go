package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/wildpine/wildpine/internal/domain/retreat"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryRetreatStore implements retreat.Repository
type InMemoryRetreatStore struct {
	*InMemoryStore[*retreat.Retreat]
}

// NewInMemoryRetreatStore creates a new in-memory retreat repository
func NewInMemoryRetreatStore() *InMemoryRetreatStore {
	return &InMemoryRetreatStore{
		InMemoryStore: NewInMemoryStore[*retreat.Retreat](),
	}
}

func (m *InMemoryRetreatStore) Create(ctx context.Context, r *retreat.Retreat) error {
	if r == nil {
		return ierr.NewError("retreat cannot be nil").
			WithHint("Retreat cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, r.ID, r)
}

func (m *InMemoryRetreatStore) Get(ctx context.Context, id string) (*retreat.Retreat, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryRetreatStore) GetBySlug(ctx context.Context, slug string) (*retreat.Retreat, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, r := range all {
		if r.Slug == slug && r.Status != types.StatusDeleted {
			return r, nil
		}
	}
	return nil, ierr.NewError("retreat not found").
		WithHintf("Retreat with slug %s was not found", slug).
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryRetreatStore) Update(ctx context.Context, r *retreat.Retreat) error {
	if r == nil {
		return ierr.NewError("retreat cannot be nil").
			WithHint("Retreat cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, r.ID, r)
}

func retreatFilterFn(ctx context.Context, r *retreat.Retreat, filter interface{}) bool {
	f, ok := filter.(*types.RetreatFilter)
	if !ok || f == nil {
		return true
	}
	if r.Status == types.StatusDeleted {
		return false
	}
	if f.Trashed != r.IsTrashed() {
		return false
	}
	if f.PublishedOnly && !r.Published {
		return false
	}
	if f.UpcomingOnly && !r.StartDate.After(time.Now().UTC()) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

func (m *InMemoryRetreatStore) List(ctx context.Context, filter *types.RetreatFilter) ([]*retreat.Retreat, error) {
	items, err := m.InMemoryStore.List(ctx, filter, retreatFilterFn, func(i, j *retreat.Retreat) bool {
		return i.StartDate.Before(j.StartDate)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryRetreatStore) Count(ctx context.Context, filter *types.RetreatFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, retreatFilterFn)
}

func (m *InMemoryRetreatStore) Trash(ctx context.Context, id string, at time.Time) error {
	r, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.IsTrashed() {
		return ierr.NewError("retreat already trashed").
			WithHint("Retreat is already in the trash").
			Mark(ierr.ErrInvalidOperation)
	}
	r.DeletedAt = &at
	r.Published = false
	return m.InMemoryStore.Update(ctx, id, r)
}

func (m *InMemoryRetreatStore) Restore(ctx context.Context, id string) error {
	r, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !r.IsTrashed() {
		return ierr.NewError("retreat not trashed").
			WithHint("Retreat is not in the trash").
			Mark(ierr.ErrInvalidOperation)
	}
	r.DeletedAt = nil
	return m.InMemoryStore.Update(ctx, id, r)
}

func (m *InMemoryRetreatStore) ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*retreat.Retreat, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, r *retreat.Retreat, _ interface{}) bool {
		return r.DeletedAt != nil && !r.DeletedAt.After(cutoff)
	}, nil)
}

func (m *InMemoryRetreatStore) Purge(ctx context.Context, id string) error {
	r, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !r.IsTrashed() {
		return ierr.NewError("retreat not trashed").
			WithHint("Only trashed retreats can be purged").
			Mark(ierr.ErrInvalidOperation)
	}
	return m.InMemoryStore.Delete(ctx, id)
}
