package postgres

import (
	"context"

	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
)

type translationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTranslationRepository(db *postgres.DB, logger *logger.Logger) translation.Repository {
	return &translationRepository{db: db, logger: logger}
}

const translationColumns = `
	id, entity_type, entity_id, locale, field, value,
	status, created_at, updated_at, created_by, updated_by
`

func (r *translationRepository) Upsert(ctx context.Context, m *translation.Translation) error {
	query := `
	INSERT INTO translations (` + translationColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)
	ON CONFLICT (entity_type, entity_id, locale, field) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at,
		updated_by = EXCLUDED.updated_by`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.EntityType, m.EntityID, m.Locale, m.Field, m.Value,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store translation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *translationRepository) GetForEntity(ctx context.Context, entityType translation.EntityType, entityID, locale string) ([]*translation.Translation, error) {
	query := `
	SELECT ` + translationColumns + `
	FROM translations
	WHERE entity_type = $1 AND entity_id = $2 AND locale = $3
	ORDER BY field ASC`

	var translations []*translation.Translation
	err := r.db.SelectContext(ctx, &translations, query, entityType, entityID, locale)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load translations").
			Mark(ierr.ErrDatabase)
	}
	return translations, nil
}

func (r *translationRepository) DeleteForEntity(ctx context.Context, entityType translation.EntityType, entityID string) error {
	query := `DELETE FROM translations WHERE entity_type = $1 AND entity_id = $2`

	_, err := r.db.ExecContext(ctx, query, entityType, entityID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete translations").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
