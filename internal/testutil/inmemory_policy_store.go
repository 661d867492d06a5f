package testutil

import (
	"context"

	"github.com/wildpine/wildpine/internal/domain/policy"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryPolicyStore implements policy.Repository
type InMemoryPolicyStore struct {
	*InMemoryStore[*policy.Policy]
}

// NewInMemoryPolicyStore creates a new in-memory policy repository
func NewInMemoryPolicyStore() *InMemoryPolicyStore {
	return &InMemoryPolicyStore{
		InMemoryStore: NewInMemoryStore[*policy.Policy](),
	}
}

func (m *InMemoryPolicyStore) Create(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, p.ID, p)
}

func (m *InMemoryPolicyStore) Get(ctx context.Context, id string) (*policy.Policy, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryPolicyStore) GetBySlug(ctx context.Context, slug string) (*policy.Policy, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, p := range all {
		if p.Slug == slug && p.Status != types.StatusDeleted {
			return p, nil
		}
	}
	return nil, ierr.NewError("policy not found").
		WithHintf("Policy %s was not found", slug).
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryPolicyStore) Update(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, p.ID, p)
}

func (m *InMemoryPolicyStore) List(ctx context.Context) ([]*policy.Policy, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *policy.Policy, _ interface{}) bool {
		return p.Status != types.StatusDeleted
	}, func(i, j *policy.Policy) bool {
		return i.Slug < j.Slug
	})
}
