package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type RetreatServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  RetreatService
	testData struct {
		retreat *retreat.Retreat
		room    *room.Room
	}
}

func TestRetreatService(t *testing.T) {
	suite.Run(t, new(RetreatServiceSuite))
}

func (s *RetreatServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRetreatService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		RetreatRepo:     s.GetStores().RetreatRepo,
		RoomRepo:        s.GetStores().RoomRepo,
		BookingRepo:     s.GetStores().BookingRepo,
		TranslationRepo: s.GetStores().TranslationRepo,
		Cache:           s.GetCache(),
	})
	s.setupTestData()
}

func (s *RetreatServiceSuite) setupTestData() {
	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_retreat",
		Title:     "Nordic Sauna Week",
		Slug:      "nordic-sauna-week",
		Location:  "Lapland, Finland",
		StartDate: s.GetNow().AddDate(0, 0, 40),
		EndDate:   s.GetNow().AddDate(0, 0, 47),
		BasePrice: decimal.NewFromInt(1500),
		Currency:  "EUR",
		Capacity:  14,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))

	s.testData.room = &room.Room{
		ID:        "room_test_retreat",
		RetreatID: s.testData.retreat.ID,
		Name:      "Lakeside Cabin",
		Occupancy: 2,
		Quantity:  3,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testData.room))
}

func (s *RetreatServiceSuite) createRequest() *dto.CreateRetreatRequest {
	return &dto.CreateRetreatRequest{
		Title:     "Highland Meditation & Hiking",
		Location:  "Scottish Highlands",
		StartDate: s.GetNow().AddDate(0, 0, 90),
		EndDate:   s.GetNow().AddDate(0, 0, 96),
		BasePrice: decimal.NewFromInt(1100),
		Currency:  "GBP",
		Capacity:  10,
	}
}

func (s *RetreatServiceSuite) TestCreateRetreatGeneratesSlug() {
	resp, err := s.service.CreateRetreat(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal("highland-meditation-hiking", resp.Slug)
	s.False(resp.Published)
}

func (s *RetreatServiceSuite) TestCreateRetreatKeepsExplicitSlug() {
	req := s.createRequest()
	req.Slug = "my-own-slug"
	resp, err := s.service.CreateRetreat(s.GetContext(), req)
	s.NoError(err)
	s.Equal("my-own-slug", resp.Slug)
}

func (s *RetreatServiceSuite) TestCreateRetreatRejectsInvertedDates() {
	req := s.createRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err := s.service.CreateRetreat(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *RetreatServiceSuite) TestGetRetreatIncludesAvailability() {
	resp, err := s.service.GetRetreat(s.GetContext(), s.testData.retreat.ID)
	s.NoError(err)
	s.Len(resp.Rooms, 1)
	s.Equal(3, resp.Rooms[0].Available)
	s.True(resp.Rooms[0].Price.Equal(decimal.NewFromInt(1500)))

	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), &booking.Booking{
		ID:             "book_test_retreat",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         s.testData.room.ID,
		CustomerName:   "Ines Weber",
		CustomerEmail:  "ines@example.com",
		Guests:         2,
		BookingStatus:  types.BookingStatusConfirmed,
		AmountTotal:    decimal.NewFromInt(1500),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err = s.service.GetRetreat(s.GetContext(), s.testData.retreat.ID)
	s.NoError(err)
	s.Equal(2, resp.Rooms[0].Available)
}

func (s *RetreatServiceSuite) TestUpdateRetreat() {
	title := "Nordic Sauna Fortnight"
	published := false
	resp, err := s.service.UpdateRetreat(s.GetContext(), s.testData.retreat.ID, &dto.UpdateRetreatRequest{
		Title:     &title,
		Published: &published,
	})
	s.NoError(err)
	s.Equal(title, resp.Title)
	s.False(resp.Published)
}

func (s *RetreatServiceSuite) TestUpdateTrashedRetreatRejected() {
	s.NoError(s.service.TrashRetreat(s.GetContext(), s.testData.retreat.ID))

	title := "New Title"
	_, err := s.service.UpdateRetreat(s.GetContext(), s.testData.retreat.ID, &dto.UpdateRetreatRequest{Title: &title})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RetreatServiceSuite) TestTrashBlockedByActiveBookings() {
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), &booking.Booking{
		ID:             "book_test_active",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         s.testData.room.ID,
		CustomerName:   "Ines Weber",
		CustomerEmail:  "ines@example.com",
		Guests:         1,
		BookingStatus:  types.BookingStatusConfirmed,
		AmountTotal:    decimal.NewFromInt(1500),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))

	err := s.service.TrashRetreat(s.GetContext(), s.testData.retreat.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RetreatServiceSuite) TestTrashAndRestore() {
	s.NoError(s.service.TrashRetreat(s.GetContext(), s.testData.retreat.ID))

	// Trashed retreats disappear from the default listing
	list, err := s.service.ListRetreats(s.GetContext(), &types.RetreatFilter{})
	s.NoError(err)
	s.Equal(0, list.Pagination.Total)

	list, err = s.service.ListRetreats(s.GetContext(), &types.RetreatFilter{Trashed: true})
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)

	// Trashing twice is rejected
	err = s.service.TrashRetreat(s.GetContext(), s.testData.retreat.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	s.NoError(s.service.RestoreRetreat(s.GetContext(), s.testData.retreat.ID))
	list, err = s.service.ListRetreats(s.GetContext(), &types.RetreatFilter{})
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)
}

func (s *RetreatServiceSuite) TestRestoreRequiresTrashed() {
	err := s.service.RestoreRetreat(s.GetContext(), s.testData.retreat.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RetreatServiceSuite) TestListRetreatsPublishedOnly() {
	req := s.createRequest()
	_, err := s.service.CreateRetreat(s.GetContext(), req)
	s.NoError(err)

	list, err := s.service.ListRetreats(s.GetContext(), &types.RetreatFilter{PublishedOnly: true})
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)
	s.Equal(s.testData.retreat.ID, list.Items[0].ID)
}

func (s *RetreatServiceSuite) TestGetRetreatBySlugUsesCache() {
	resp, err := s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "")
	s.NoError(err)
	s.Equal(s.testData.retreat.ID, resp.ID)

	// A warm cache answers even after the backing row is gone
	s.NoError(s.GetStores().RetreatRepo.Trash(s.GetContext(), s.testData.retreat.ID, s.GetNow()))
	s.NoError(s.GetStores().RetreatRepo.Purge(s.GetContext(), s.testData.retreat.ID))

	resp, err = s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "")
	s.NoError(err)
	s.Equal(s.testData.retreat.ID, resp.ID)
}

func (s *RetreatServiceSuite) TestUpdateRetreatInvalidatesSlugCache() {
	_, err := s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "")
	s.NoError(err)

	title := "Nordic Sauna Fortnight"
	_, err = s.service.UpdateRetreat(s.GetContext(), s.testData.retreat.ID, &dto.UpdateRetreatRequest{Title: &title})
	s.NoError(err)

	resp, err := s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "")
	s.NoError(err)
	s.Equal(title, resp.Title)
}

func (s *RetreatServiceSuite) seedTranslation(field, value string) {
	s.NoError(s.GetStores().TranslationRepo.Upsert(s.GetContext(), &translation.Translation{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSLATION),
		EntityType: translation.EntityTypeRetreat,
		EntityID:   s.testData.retreat.ID,
		Locale:     "de",
		Field:      field,
		Value:      value,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *RetreatServiceSuite) TestGetRetreatBySlugLocalized() {
	s.seedTranslation("title", "Nordische Saunawoche")

	resp, err := s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "de")
	s.NoError(err)
	s.Equal("Nordische Saunawoche", resp.Title)
	// Untranslated fields keep the source language
	s.Equal("Lapland, Finland", resp.Location)

	// The cached source response stays untranslated
	resp, err = s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "")
	s.NoError(err)
	s.Equal("Nordic Sauna Week", resp.Title)
}

func (s *RetreatServiceSuite) TestGetRetreatBySlugUnknownLocaleFallsBack() {
	s.seedTranslation("title", "Nordische Saunawoche")

	resp, err := s.service.GetRetreatBySlug(s.GetContext(), "nordic-sauna-week", "fr")
	s.NoError(err)
	s.Equal("Nordic Sauna Week", resp.Title)
}
