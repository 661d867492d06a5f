package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/wildpine/wildpine/internal/domain/promocode"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryPromoCodeStore implements promocode.Repository
type InMemoryPromoCodeStore struct {
	*InMemoryStore[*promocode.PromoCode]
	// redemptionMu serializes IncrementRedemptions so the exhaustion check
	// and the increment stay atomic, like the SQL conditional update
	redemptionMu sync.Mutex
}

// NewInMemoryPromoCodeStore creates a new in-memory promo code repository
func NewInMemoryPromoCodeStore() *InMemoryPromoCodeStore {
	return &InMemoryPromoCodeStore{
		InMemoryStore: NewInMemoryStore[*promocode.PromoCode](),
	}
}

func (m *InMemoryPromoCodeStore) Create(ctx context.Context, p *promocode.PromoCode) error {
	if p == nil {
		return ierr.NewError("promo code cannot be nil").
			WithHint("Promo code cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, p.ID, p)
}

func (m *InMemoryPromoCodeStore) Get(ctx context.Context, id string) (*promocode.PromoCode, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryPromoCodeStore) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, p := range all {
		if strings.EqualFold(p.Code, code) && p.Status != types.StatusDeleted {
			return p, nil
		}
	}
	return nil, ierr.NewError("promo code not found").
		WithHintf("Promo code %s was not found", code).
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryPromoCodeStore) Update(ctx context.Context, p *promocode.PromoCode) error {
	if p == nil {
		return ierr.NewError("promo code cannot be nil").
			WithHint("Promo code cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, p.ID, p)
}

func (m *InMemoryPromoCodeStore) Delete(ctx context.Context, id string) error {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	p.Status = types.StatusDeleted
	return m.InMemoryStore.Update(ctx, id, p)
}

func promoCodeFilterFn(ctx context.Context, p *promocode.PromoCode, filter interface{}) bool {
	f, ok := filter.(*types.PromoCodeFilter)
	if !ok || f == nil {
		return true
	}
	if p.Status == types.StatusDeleted {
		return false
	}
	if f.RetreatID != "" && (p.RetreatID == nil || *p.RetreatID != f.RetreatID) {
		return false
	}
	if f.Scope != nil && p.Scope != *f.Scope {
		return false
	}
	return true
}

func (m *InMemoryPromoCodeStore) List(ctx context.Context, filter *types.PromoCodeFilter) ([]*promocode.PromoCode, error) {
	items, err := m.InMemoryStore.List(ctx, filter, promoCodeFilterFn, func(i, j *promocode.PromoCode) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryPromoCodeStore) Count(ctx context.Context, filter *types.PromoCodeFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, promoCodeFilterFn)
}

func (m *InMemoryPromoCodeStore) IncrementRedemptions(ctx context.Context, id string) error {
	m.redemptionMu.Lock()
	defer m.redemptionMu.Unlock()

	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.MaxRedemptions != nil && p.TotalRedemptions >= *p.MaxRedemptions {
		return ierr.NewError("promo code exhausted").
			WithHint("This promo code has reached its redemption limit").
			Mark(ierr.ErrInvalidOperation)
	}
	p.TotalRedemptions++
	return m.InMemoryStore.Update(ctx, id, p)
}
