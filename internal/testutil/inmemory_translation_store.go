package testutil

import (
	"context"
	"fmt"

	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
)

// InMemoryTranslationStore implements translation.Repository. Entries are
// keyed the way the unique index is, so Upsert replaces in place.
type InMemoryTranslationStore struct {
	*InMemoryStore[*translation.Translation]
}

// NewInMemoryTranslationStore creates a new in-memory translation repository
func NewInMemoryTranslationStore() *InMemoryTranslationStore {
	return &InMemoryTranslationStore{
		InMemoryStore: NewInMemoryStore[*translation.Translation](),
	}
}

func translationKey(t *translation.Translation) string {
	return fmt.Sprintf("%s:%s:%s:%s", t.EntityType, t.EntityID, t.Locale, t.Field)
}

func (m *InMemoryTranslationStore) Upsert(ctx context.Context, t *translation.Translation) error {
	if t == nil {
		return ierr.NewError("translation cannot be nil").
			WithHint("Translation cannot be nil").
			Mark(ierr.ErrValidation)
	}
	key := translationKey(t)
	if err := m.InMemoryStore.Update(ctx, key, t); err == nil {
		return nil
	}
	return m.InMemoryStore.Create(ctx, key, t)
}

func (m *InMemoryTranslationStore) GetForEntity(ctx context.Context, entityType translation.EntityType, entityID, locale string) ([]*translation.Translation, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, t *translation.Translation, _ interface{}) bool {
		return t.EntityType == entityType && t.EntityID == entityID && t.Locale == locale
	}, func(i, j *translation.Translation) bool {
		return i.Field < j.Field
	})
}

func (m *InMemoryTranslationStore) DeleteForEntity(ctx context.Context, entityType translation.EntityType, entityID string) error {
	items, err := m.InMemoryStore.List(ctx, nil, func(ctx context.Context, t *translation.Translation, _ interface{}) bool {
		return t.EntityType == entityType && t.EntityID == entityID
	}, nil)
	if err != nil {
		return err
	}
	for _, t := range items {
		if err := m.InMemoryStore.Delete(ctx, translationKey(t)); err != nil {
			return err
		}
	}
	return nil
}
