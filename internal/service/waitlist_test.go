package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type WaitlistServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  WaitlistService
	testData struct {
		retreat *retreat.Retreat
		room    *room.Room
	}
}

func TestWaitlistService(t *testing.T) {
	suite.Run(t, new(WaitlistServiceSuite))
}

func (s *WaitlistServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewWaitlistService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		RetreatRepo:  s.GetStores().RetreatRepo,
		RoomRepo:     s.GetStores().RoomRepo,
		WaitlistRepo: s.GetStores().WaitlistRepo,
		Cache:        s.GetCache(),
	})
	s.setupTestData()
}

func (s *WaitlistServiceSuite) setupTestData() {
	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_waitlist",
		Title:     "Sold Out Surf Camp",
		Slug:      "sold-out-surf-camp",
		StartDate: s.GetNow().AddDate(0, 0, 45),
		EndDate:   s.GetNow().AddDate(0, 0, 50),
		BasePrice: decimal.NewFromInt(700),
		Currency:  "EUR",
		Capacity:  12,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))

	s.testData.room = &room.Room{
		ID:        "room_test_waitlist",
		RetreatID: s.testData.retreat.ID,
		Name:      "Beach Hut",
		Occupancy: 2,
		Quantity:  1,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testData.room))
}

func (s *WaitlistServiceSuite) TestJoin() {
	resp, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		RoomID:    &s.testData.room.ID,
		Email:     "hopeful@example.com",
		Name:      "Hopeful Customer",
	})
	s.NoError(err)
	s.Equal(types.WaitlistStatusWaiting, resp.WaitlistStatus)
}

func (s *WaitlistServiceSuite) TestJoinTwiceRejected() {
	req := &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		Email:     "hopeful@example.com",
	}
	_, err := s.service.Join(s.GetContext(), req)
	s.NoError(err)

	_, err = s.service.Join(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *WaitlistServiceSuite) TestJoinTrashedRetreat() {
	s.NoError(s.GetStores().RetreatRepo.Trash(s.GetContext(), s.testData.retreat.ID, time.Now().UTC()))

	_, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		Email:     "hopeful@example.com",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *WaitlistServiceSuite) TestJoinForeignRoomRejected() {
	other := &room.Room{
		ID:        "room_elsewhere",
		RetreatID: "ret_elsewhere",
		Name:      "Tent",
		Occupancy: 1,
		Quantity:  3,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), other))

	_, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		RoomID:    &other.ID,
		Email:     "hopeful@example.com",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *WaitlistServiceSuite) TestMarkConvertedRequiresNotified() {
	joined, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		Email:     "hopeful@example.com",
	})
	s.NoError(err)

	_, err = s.service.MarkConverted(s.GetContext(), joined.Entry.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	entry, err := s.GetStores().WaitlistRepo.Get(s.GetContext(), joined.Entry.ID)
	s.NoError(err)
	entry.WaitlistStatus = types.WaitlistStatusNotified
	s.NoError(s.GetStores().WaitlistRepo.Update(s.GetContext(), entry))

	resp, err := s.service.MarkConverted(s.GetContext(), entry.ID)
	s.NoError(err)
	s.Equal(types.WaitlistStatusConverted, resp.WaitlistStatus)
}

func (s *WaitlistServiceSuite) TestListEntriesByRetreat() {
	_, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
		RetreatID: s.testData.retreat.ID,
		Email:     "hopeful@example.com",
	})
	s.NoError(err)

	resp, err := s.service.ListEntries(s.GetContext(), &types.WaitlistFilter{RetreatID: s.testData.retreat.ID})
	s.NoError(err)
	s.Len(resp.Items, 1)

	resp, err = s.service.ListEntries(s.GetContext(), &types.WaitlistFilter{RetreatID: "ret_other"})
	s.NoError(err)
	s.Empty(resp.Items)
}

func (s *WaitlistServiceSuite) TestListEntriesTotalSpansPages() {
	for _, email := range []string{"first@example.com", "second@example.com", "third@example.com"} {
		_, err := s.service.Join(s.GetContext(), &dto.JoinWaitlistRequest{
			RetreatID: s.testData.retreat.ID,
			Email:     email,
		})
		s.NoError(err)
	}

	resp, err := s.service.ListEntries(s.GetContext(), &types.WaitlistFilter{
		QueryFilter: types.QueryFilter{Limit: lo.ToPtr(1)},
		RetreatID:   s.testData.retreat.ID,
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(3, resp.Pagination.Total)
}
