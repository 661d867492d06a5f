package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/httpclient"
	"github.com/wildpine/wildpine/internal/integration/translate"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type TranslationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TranslationService
}

func TestTranslationService(t *testing.T) {
	suite.Run(t, new(TranslationServiceSuite))
}

func (s *TranslationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	httpClient := httpclient.NewDefaultClient()
	s.service = NewTranslationService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		RetreatRepo:     s.GetStores().RetreatRepo,
		BlogPostRepo:    s.GetStores().BlogPostRepo,
		TranslationRepo: s.GetStores().TranslationRepo,
		Translate:       translate.NewClient(s.GetConfig(), httpClient, s.GetLogger()),
		Cache:           s.GetCache(),
		Client:          httpClient,
	})
}

func (s *TranslationServiceSuite) seedTranslation(field, value string) {
	s.NoError(s.GetStores().TranslationRepo.Upsert(s.GetContext(), &translation.Translation{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSLATION),
		EntityType: translation.EntityTypeRetreat,
		EntityID:   "ret_test_translation",
		Locale:     "de",
		Field:      field,
		Value:      value,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *TranslationServiceSuite) TestGetTranslations() {
	s.seedTranslation("title", "Herbstwald Yoga")
	s.seedTranslation("summary", "Eine Woche im Wald")

	resp, err := s.service.GetTranslations(s.GetContext(), translation.EntityTypeRetreat, "ret_test_translation", "de")
	s.NoError(err)
	s.Len(resp.Fields, 2)
	s.Equal("Herbstwald Yoga", resp.Fields["title"])
}

func (s *TranslationServiceSuite) TestGetTranslationsMissingLocale() {
	s.seedTranslation("title", "Herbstwald Yoga")

	_, err := s.service.GetTranslations(s.GetContext(), translation.EntityTypeRetreat, "ret_test_translation", "fr")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TranslationServiceSuite) TestUpsertReplacesExistingField() {
	s.seedTranslation("title", "Alte Fassung")
	s.seedTranslation("title", "Neue Fassung")

	resp, err := s.service.GetTranslations(s.GetContext(), translation.EntityTypeRetreat, "ret_test_translation", "de")
	s.NoError(err)
	s.Len(resp.Fields, 1)
	s.Equal("Neue Fassung", resp.Fields["title"])
}

func (s *TranslationServiceSuite) TestTranslateEntityWithoutProvider() {
	_, err := s.service.TranslateEntity(s.GetContext(), &dto.TranslateEntityRequest{
		EntityType: translation.EntityTypeRetreat,
		EntityID:   "ret_missing",
		Locale:     "de",
	})
	// The entity is checked before the provider
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TranslationServiceSuite) TestTranslateEntityInvalidType() {
	_, err := s.service.TranslateEntity(s.GetContext(), &dto.TranslateEntityRequest{
		EntityType: translation.EntityType("booking"),
		EntityID:   "book_123",
		Locale:     "de",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
