package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
)

// TranslateEntityRequest asks for machine translation of an entity's text
// fields into the target locale
type TranslateEntityRequest struct {
	EntityType translation.EntityType `json:"entity_type" binding:"required"`
	EntityID   string                 `json:"entity_id" binding:"required"`
	Locale     string                 `json:"locale" binding:"required,len=2" example:"de"`
}

// TranslationResponse represents the translated fields of one entity
type TranslationResponse struct {
	EntityType translation.EntityType `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Locale     string                 `json:"locale"`
	Fields     map[string]string      `json:"fields"`
}

func (r *TranslateEntityRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid translation payload").
			Mark(ierr.ErrValidation)
	}
	switch r.EntityType {
	case translation.EntityTypeRetreat, translation.EntityTypeBlogPost:
		return nil
	}
	return ierr.NewError("invalid entity type").
		WithHintf("Entity type %s cannot be translated", r.EntityType).
		Mark(ierr.ErrValidation)
}
