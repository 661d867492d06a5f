package translation

import "context"

// Repository defines the interface for translation persistence
type Repository interface {
	// Upsert replaces the stored value for (entity, locale, field)
	Upsert(ctx context.Context, t *Translation) error
	// GetForEntity returns all translated fields of an entity in a locale
	GetForEntity(ctx context.Context, entityType EntityType, entityID, locale string) ([]*Translation, error)
	// DeleteForEntity drops all translations of an entity, used on purge
	DeleteForEntity(ctx context.Context, entityType EntityType, entityID string) error
}
