package testutil

import (
	"context"
	"strings"

	"github.com/wildpine/wildpine/internal/domain/user"
	ierr "github.com/wildpine/wildpine/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user repository
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (m *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if existing, _ := m.GetByEmail(ctx, u.Email); existing != nil {
		return ierr.NewError("user already exists").
			WithHintf("A user with email %s already exists", u.Email).
			Mark(ierr.ErrAlreadyExists)
	}
	return m.InMemoryStore.Create(ctx, u.ID, u)
}

func (m *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").
		WithHint("User was not found").
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, u.ID, u)
}
