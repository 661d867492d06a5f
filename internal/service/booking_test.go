package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/promocode"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	"github.com/wildpine/wildpine/internal/domain/waitlist"
	"github.com/wildpine/wildpine/internal/email"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type BookingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  BookingService
	testData struct {
		retreat *retreat.Retreat
		room    *room.Room
		promo   *promocode.PromoCode
	}
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func (s *BookingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *BookingServiceSuite) setupService() {
	s.service = NewBookingService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		RetreatRepo:   s.GetStores().RetreatRepo,
		RoomRepo:      s.GetStores().RoomRepo,
		BookingRepo:   s.GetStores().BookingRepo,
		PromoCodeRepo: s.GetStores().PromoCodeRepo,
		PaymentRepo:   s.GetStores().PaymentRepo,
		ScheduleRepo:  s.GetStores().ScheduleRepo,
		WaitlistRepo:  s.GetStores().WaitlistRepo,
		Email:         email.NewService(email.NewClient(s.GetConfig()), s.GetLogger()),
		Cache:         s.GetCache(),
	})
}

func (s *BookingServiceSuite) setupTestData() {
	now := s.GetNow()
	earlyBirdUntil := now.AddDate(0, 0, 30)

	s.testData.retreat = &retreat.Retreat{
		ID:               "ret_test_booking",
		Title:            "Autumn Forest Yoga",
		Slug:             "autumn-forest-yoga",
		Location:         "Black Forest, Germany",
		StartDate:        now.AddDate(0, 0, 60),
		EndDate:          now.AddDate(0, 0, 67),
		BasePrice:        decimal.NewFromInt(1000),
		Currency:         "EUR",
		Capacity:         20,
		EarlyBirdPercent: decimal.NewFromInt(10),
		EarlyBirdUntil:   &earlyBirdUntil,
		Published:        true,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))

	s.testData.room = &room.Room{
		ID:         "room_test_booking",
		RetreatID:  s.testData.retreat.ID,
		Name:       "Double Cabin",
		Occupancy:  2,
		PriceDelta: decimal.NewFromInt(200),
		Quantity:   2,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testData.room))

	// Ten percent off, same as the early bird window
	percentOff := decimal.NewFromInt(10)
	s.testData.promo = &promocode.PromoCode{
		ID:         "promo_test_booking",
		Code:       "TIE10",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), s.testData.promo))
}

func (s *BookingServiceSuite) createRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		RetreatID:     s.testData.retreat.ID,
		RoomID:        s.testData.room.ID,
		CustomerName:  "Maja Lindqvist",
		CustomerEmail: "maja@example.com",
		Guests:        2,
	}
}

func (s *BookingServiceSuite) TestQuoteAppliesEarlyBird() {
	resp, err := s.service.Quote(s.GetContext(), &dto.QuoteRequest{
		RetreatID: s.testData.retreat.ID,
		RoomID:    s.testData.room.ID,
	})
	s.NoError(err)
	s.NotNil(resp)

	// 1000 base + 200 delta, minus 10% early bird
	s.True(resp.ListPrice.Equal(decimal.NewFromInt(1200)), "list price %s", resp.ListPrice)
	s.True(resp.Discount.Equal(decimal.NewFromInt(120)), "discount %s", resp.Discount)
	s.Equal(types.DiscountSourceEarlyBird, resp.DiscountSource)
	s.True(resp.Total.Equal(decimal.NewFromInt(1080)), "total %s", resp.Total)
	s.Equal("EUR", resp.Currency)

	// 25% deposit, balance due 30 days before the start
	s.True(resp.DepositAmount.Equal(decimal.NewFromInt(270)), "deposit %s", resp.DepositAmount)
	s.True(resp.BalanceAmount.Equal(decimal.NewFromInt(810)), "balance %s", resp.BalanceAmount)
	s.WithinDuration(s.testData.retreat.StartDate.AddDate(0, 0, -30), resp.BalanceDueDate, time.Second)
}

func (s *BookingServiceSuite) TestQuotePromoWinsTies() {
	resp, err := s.service.Quote(s.GetContext(), &dto.QuoteRequest{
		RetreatID: s.testData.retreat.ID,
		RoomID:    s.testData.room.ID,
		PromoCode: "tie10",
	})
	s.NoError(err)
	s.True(resp.Discount.Equal(decimal.NewFromInt(120)), "discount %s", resp.Discount)
	s.Equal(types.DiscountSourcePromoCode, resp.DiscountSource)
}

func (s *BookingServiceSuite) TestQuoteRejectsForeignRoom() {
	other := &room.Room{
		ID:        "room_other_retreat",
		RetreatID: "ret_someone_else",
		Name:      "Single",
		Occupancy: 1,
		Quantity:  1,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), other))

	_, err := s.service.Quote(s.GetContext(), &dto.QuoteRequest{
		RetreatID: s.testData.retreat.ID,
		RoomID:    other.ID,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BookingServiceSuite) TestCreateBooking() {
	resp, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.NotNil(resp)

	s.Equal(types.BookingStatusPending, resp.BookingStatus)
	s.True(resp.AmountTotal.Equal(decimal.NewFromInt(1080)), "total %s", resp.AmountTotal)
	s.True(resp.AmountPaid.IsZero())
	s.Equal(types.DiscountSourceEarlyBird, resp.DiscountSource)
	s.Equal("EUR", resp.Currency)

	s.Len(resp.Schedules, 2)
	s.Equal(types.ScheduleKindDeposit, resp.Schedules[0].Kind)
	s.True(resp.Schedules[0].Amount.Equal(decimal.NewFromInt(270)))
	s.Equal(types.ScheduleKindBalance, resp.Schedules[1].Kind)
	s.True(resp.Schedules[1].Amount.Equal(decimal.NewFromInt(810)))
	s.Equal(types.ScheduleStatusScheduled, resp.Schedules[0].ScheduleStatus)
}

func (s *BookingServiceSuite) TestCreateBookingCollapsesLateSchedule() {
	late := &retreat.Retreat{
		ID:        "ret_test_late",
		Title:     "Last Minute Hike",
		Slug:      "last-minute-hike",
		Location:  "Dolomites, Italy",
		StartDate: s.GetNow().AddDate(0, 0, 10),
		EndDate:   s.GetNow().AddDate(0, 0, 14),
		BasePrice: decimal.NewFromInt(500),
		Currency:  "EUR",
		Capacity:  10,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), late))
	rm := &room.Room{
		ID:        "room_test_late",
		RetreatID: late.ID,
		Name:      "Bunk",
		Occupancy: 1,
		Quantity:  4,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), rm))

	resp, err := s.service.CreateBooking(s.GetContext(), &dto.CreateBookingRequest{
		RetreatID:     late.ID,
		RoomID:        rm.ID,
		CustomerName:  "Jon Weiss",
		CustomerEmail: "jon@example.com",
		Guests:        1,
	})
	s.NoError(err)

	// Inside the balance window everything is due up front
	s.Len(resp.Schedules, 1)
	s.Equal(types.ScheduleKindDeposit, resp.Schedules[0].Kind)
	s.True(resp.Schedules[0].Amount.Equal(decimal.NewFromInt(500)))
}

func (s *BookingServiceSuite) TestCreateBookingSoldOut() {
	req := s.createRequest()
	_, err := s.service.CreateBooking(s.GetContext(), req)
	s.NoError(err)

	req2 := s.createRequest()
	req2.CustomerEmail = "sven@example.com"
	_, err = s.service.CreateBooking(s.GetContext(), req2)
	s.NoError(err)

	req3 := s.createRequest()
	req3.CustomerEmail = "nora@example.com"
	_, err = s.service.CreateBooking(s.GetContext(), req3)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BookingServiceSuite) TestCreateBookingDuplicateWindow() {
	_, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *BookingServiceSuite) TestCreateBookingTooManyGuests() {
	req := s.createRequest()
	req.Guests = 3
	_, err := s.service.CreateBooking(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BookingServiceSuite) TestCreateBookingUnpublishedRetreat() {
	s.testData.retreat.Published = false
	s.NoError(s.GetStores().RetreatRepo.Update(s.GetContext(), s.testData.retreat))

	_, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BookingServiceSuite) TestCreateBookingExhaustedPromo() {
	one := 1
	amountOff := decimal.NewFromInt(50)
	promo := &promocode.PromoCode{
		ID:             "promo_test_once",
		Code:           "ONCE",
		Scope:          types.PromoScopeGlobal,
		Type:           types.DiscountTypeFixed,
		AmountOff:      &amountOff,
		MaxRedemptions: &one,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), promo))

	// Fixed 50 loses to the 120 early bird, so force a retreat without one
	s.testData.retreat.EarlyBirdPercent = decimal.Zero
	s.NoError(s.GetStores().RetreatRepo.Update(s.GetContext(), s.testData.retreat))

	req := s.createRequest()
	req.PromoCode = "ONCE"
	resp, err := s.service.CreateBooking(s.GetContext(), req)
	s.NoError(err)
	s.Equal(types.DiscountSourcePromoCode, resp.DiscountSource)
	s.True(resp.AmountTotal.Equal(decimal.NewFromInt(1150)))

	req2 := s.createRequest()
	req2.CustomerEmail = "second@example.com"
	req2.PromoCode = "ONCE"
	_, err = s.service.CreateBooking(s.GetContext(), req2)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BookingServiceSuite) TestCancelBooking() {
	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	entry := &waitlist.Entry{
		ID:             "wait_test_cancel",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         &s.testData.room.ID,
		Email:          "waiting@example.com",
		Name:           "Waiting Customer",
		WaitlistStatus: types.WaitlistStatusWaiting,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().WaitlistRepo.Create(s.GetContext(), entry))

	resp, err := s.service.CancelBooking(s.GetContext(), created.ID, &dto.CancelBookingRequest{Reason: "change of plans"})
	s.NoError(err)
	s.Equal(types.BookingStatusCancelled, resp.BookingStatus)
	s.Contains(resp.Notes, "change of plans")
	for _, sched := range resp.Schedules {
		s.Equal(types.ScheduleStatusVoid, sched.ScheduleStatus)
	}

	// The freed spot goes to the longest waiting entry
	updated, err := s.GetStores().WaitlistRepo.Get(s.GetContext(), entry.ID)
	s.NoError(err)
	s.Equal(types.WaitlistStatusNotified, updated.WaitlistStatus)
	s.NotNil(updated.NotifiedAt)
}

func (s *BookingServiceSuite) TestCancelBookingTwiceFails() {
	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.CancelBooking(s.GetContext(), created.ID, nil)
	s.NoError(err)

	_, err = s.service.CancelBooking(s.GetContext(), created.ID, nil)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BookingServiceSuite) TestGetBookingIncludesSchedules() {
	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.GetBooking(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, resp.ID)
	s.Len(resp.Schedules, 2)
}

func (s *BookingServiceSuite) TestListBookingsFilters() {
	_, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.ListBookings(s.GetContext(), &types.BookingFilter{
		RetreatID: s.testData.retreat.ID,
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)

	resp, err = s.service.ListBookings(s.GetContext(), &types.BookingFilter{
		CustomerEmail: "nobody@example.com",
	})
	s.NoError(err)
	s.Equal(0, resp.Pagination.Total)
}

func (s *BookingServiceSuite) seedSecondRoom(quantity int) *room.Room {
	second := &room.Room{
		ID:        "room_test_booking_2",
		RetreatID: s.testData.retreat.ID,
		Name:      "Forest Cabin",
		Occupancy: 2,
		Quantity:  quantity,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), second))
	return second
}

func (s *BookingServiceSuite) TestAssignRoom() {
	second := s.seedSecondRoom(1)

	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.AssignRoom(s.GetContext(), created.ID, &dto.AssignRoomRequest{RoomID: second.ID})
	s.NoError(err)
	s.Equal(second.ID, resp.RoomID)
}

func (s *BookingServiceSuite) TestAssignRoomSoldOutRejected() {
	second := s.seedSecondRoom(1)

	req := s.createRequest()
	req.RoomID = second.ID
	_, err := s.service.CreateBooking(s.GetContext(), req)
	s.NoError(err)

	other := s.createRequest()
	other.CustomerEmail = "liam@example.com"
	created, err := s.service.CreateBooking(s.GetContext(), other)
	s.NoError(err)

	_, err = s.service.AssignRoom(s.GetContext(), created.ID, &dto.AssignRoomRequest{RoomID: second.ID})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BookingServiceSuite) TestAssignRoomForeignRoomRejected() {
	foreign := &room.Room{
		ID:        "room_test_other_retreat",
		RetreatID: "ret_somewhere_else",
		Name:      "Hillside Cabin",
		Occupancy: 2,
		Quantity:  2,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), foreign))

	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.AssignRoom(s.GetContext(), created.ID, &dto.AssignRoomRequest{RoomID: foreign.ID})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BookingServiceSuite) TestAssignRoomCancelledBookingRejected() {
	second := s.seedSecondRoom(1)

	created, err := s.service.CreateBooking(s.GetContext(), s.createRequest())
	s.NoError(err)
	_, err = s.service.CancelBooking(s.GetContext(), created.ID, &dto.CancelBookingRequest{})
	s.NoError(err)

	_, err = s.service.AssignRoom(s.GetContext(), created.ID, &dto.AssignRoomRequest{RoomID: second.ID})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
