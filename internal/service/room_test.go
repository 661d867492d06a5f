package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type RoomServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  RoomService
	testData struct {
		retreat *retreat.Retreat
	}
}

func TestRoomService(t *testing.T) {
	suite.Run(t, new(RoomServiceSuite))
}

func (s *RoomServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRoomService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		RetreatRepo: s.GetStores().RetreatRepo,
		RoomRepo:    s.GetStores().RoomRepo,
		BookingRepo: s.GetStores().BookingRepo,
		Cache:       s.GetCache(),
	})

	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_room",
		Title:     "River Kayak Week",
		Slug:      "river-kayak-week",
		StartDate: s.GetNow().AddDate(0, 0, 50),
		EndDate:   s.GetNow().AddDate(0, 0, 55),
		BasePrice: decimal.NewFromInt(850),
		Currency:  "EUR",
		Capacity:  12,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))
}

func (s *RoomServiceSuite) seedBooking(roomID string) {
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), &booking.Booking{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BOOKING),
		RetreatID:      s.testData.retreat.ID,
		RoomID:         roomID,
		CustomerName:   "Booked Guest",
		CustomerEmail:  "guest@example.com",
		Guests:         1,
		BookingStatus:  types.BookingStatusConfirmed,
		AmountTotal:    decimal.NewFromInt(850),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *RoomServiceSuite) TestCreateRoom() {
	resp, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
		Name:       "Riverside Tent",
		Occupancy:  2,
		PriceDelta: decimal.NewFromInt(-100),
		Quantity:   5,
	})
	s.NoError(err)
	s.Equal(5, resp.Available)
	// Negative deltas price the room below the base
	s.True(resp.Price.Equal(decimal.NewFromInt(750)), "price %s", resp.Price)
}

func (s *RoomServiceSuite) TestCreateRoomOnTrashedRetreat() {
	s.NoError(s.GetStores().RetreatRepo.Trash(s.GetContext(), s.testData.retreat.ID, s.GetNow()))

	_, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
		Name:      "Tent",
		Occupancy: 1,
		Quantity:  2,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RoomServiceSuite) TestAvailableCountsHeldBookings() {
	created, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
		Name:      "Cabin",
		Occupancy: 2,
		Quantity:  2,
	})
	s.NoError(err)

	s.seedBooking(created.Room.ID)

	available, err := s.service.Available(s.GetContext(), created.Room.ID)
	s.NoError(err)
	s.Equal(1, available)
}

func (s *RoomServiceSuite) TestUpdateQuantityBelowHeldRejected() {
	created, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
		Name:      "Cabin",
		Occupancy: 2,
		Quantity:  3,
	})
	s.NoError(err)
	s.seedBooking(created.Room.ID)
	s.seedBooking(created.Room.ID)

	one := 1
	_, err = s.service.UpdateRoom(s.GetContext(), created.Room.ID, &dto.UpdateRoomRequest{Quantity: &one})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	two := 2
	resp, err := s.service.UpdateRoom(s.GetContext(), created.Room.ID, &dto.UpdateRoomRequest{Quantity: &two})
	s.NoError(err)
	s.Equal(2, resp.Quantity)
	s.Equal(0, resp.Available)
}

func (s *RoomServiceSuite) TestDeleteRoomWithHeldBookingsRejected() {
	created, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
		Name:      "Cabin",
		Occupancy: 2,
		Quantity:  2,
	})
	s.NoError(err)
	s.seedBooking(created.Room.ID)

	err = s.service.DeleteRoom(s.GetContext(), created.Room.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RoomServiceSuite) TestListRooms() {
	for _, name := range []string{"Cabin", "Tent"} {
		_, err := s.service.CreateRoom(s.GetContext(), s.testData.retreat.ID, &dto.CreateRoomRequest{
			Name:      name,
			Occupancy: 2,
			Quantity:  2,
		})
		s.NoError(err)
	}

	rooms, err := s.service.ListRooms(s.GetContext(), s.testData.retreat.ID)
	s.NoError(err)
	s.Len(rooms, 2)
}
