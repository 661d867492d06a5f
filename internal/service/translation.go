package service

import (
	"context"

	"github.com/wildpine/wildpine/internal/api/dto"
	domainTranslation "github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// TranslationService machine-translates content entities and stores the
// results per locale
type TranslationService interface {
	TranslateEntity(ctx context.Context, req *dto.TranslateEntityRequest) (*dto.TranslationResponse, error)
	GetTranslations(ctx context.Context, entityType domainTranslation.EntityType, entityID, locale string) (*dto.TranslationResponse, error)
}

type translationService struct {
	ServiceParams
}

func NewTranslationService(params ServiceParams) TranslationService {
	return &translationService{ServiceParams: params}
}

// sourceFields returns the translatable fields of an entity in a stable order
func (s *translationService) sourceFields(ctx context.Context, entityType domainTranslation.EntityType, entityID string) ([]string, []string, error) {
	switch entityType {
	case domainTranslation.EntityTypeRetreat:
		r, err := s.RetreatRepo.Get(ctx, entityID)
		if err != nil {
			return nil, nil, err
		}
		return []string{"title", "summary", "description"},
			[]string{r.Title, r.Summary, r.Description}, nil
	case domainTranslation.EntityTypeBlogPost:
		p, err := s.BlogPostRepo.Get(ctx, entityID)
		if err != nil {
			return nil, nil, err
		}
		return []string{"title", "excerpt", "body"},
			[]string{p.Title, p.Excerpt, p.Body}, nil
	}
	return nil, nil, ierr.NewError("invalid entity type").
		WithHintf("Entity type %s cannot be translated", entityType).
		Mark(ierr.ErrValidation)
}

func (s *translationService) TranslateEntity(ctx context.Context, req *dto.TranslateEntityRequest) (*dto.TranslationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fields, values, err := s.sourceFields(ctx, req.EntityType, req.EntityID)
	if err != nil {
		return nil, err
	}

	translated, err := s.Translate.Translate(ctx, values, req.Locale)
	if err != nil {
		return nil, err
	}

	resp := &dto.TranslationResponse{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Locale:     req.Locale,
		Fields:     make(map[string]string, len(fields)),
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		for i, field := range fields {
			t := &domainTranslation.Translation{
				ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSLATION),
				EntityType: req.EntityType,
				EntityID:   req.EntityID,
				Locale:     req.Locale,
				Field:      field,
				Value:      translated[i],
				BaseModel:  types.GetDefaultBaseModel(ctx),
			}
			if err := s.TranslationRepo.Upsert(ctx, t); err != nil {
				return err
			}
			resp.Fields[field] = translated[i]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("translated entity",
		"entity_type", req.EntityType,
		"entity_id", req.EntityID,
		"locale", req.Locale,
		"fields", len(fields))
	return resp, nil
}

func (s *translationService) GetTranslations(ctx context.Context, entityType domainTranslation.EntityType, entityID, locale string) (*dto.TranslationResponse, error) {
	translations, err := s.TranslationRepo.GetForEntity(ctx, entityType, entityID, locale)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ierr.NewError("no translations found").
			WithHintf("No %s translations exist for this entity", locale).
			Mark(ierr.ErrNotFound)
	}

	resp := &dto.TranslationResponse{
		EntityType: entityType,
		EntityID:   entityID,
		Locale:     locale,
		Fields:     make(map[string]string, len(translations)),
	}
	for _, t := range translations {
		resp.Fields[t.Field] = t.Value
	}
	return resp, nil
}
