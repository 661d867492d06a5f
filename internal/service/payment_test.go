package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	stripeapi "github.com/stripe/stripe-go/v82"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	"github.com/wildpine/wildpine/internal/email"
	ierr "github.com/wildpine/wildpine/internal/errors"
	stripeClient "github.com/wildpine/wildpine/internal/integration/stripe"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	testData struct {
		retreat *retreat.Retreat
		room    *room.Room
		booking *booking.Booking
		deposit *payment.Schedule
		balance *payment.Schedule
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PaymentServiceSuite) setupService() {
	s.service = NewPaymentService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		RetreatRepo:  s.GetStores().RetreatRepo,
		RoomRepo:     s.GetStores().RoomRepo,
		BookingRepo:  s.GetStores().BookingRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		ScheduleRepo: s.GetStores().ScheduleRepo,
		Email:        email.NewService(email.NewClient(s.GetConfig()), s.GetLogger()),
		Stripe:       stripeClient.NewClient(s.GetConfig(), s.GetLogger()),
		Cache:        s.GetCache(),
	})
}

func (s *PaymentServiceSuite) setupTestData() {
	now := s.GetNow()

	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_payment",
		Title:     "Coastal Breathwork",
		Slug:      "coastal-breathwork",
		StartDate: now.AddDate(0, 0, 60),
		EndDate:   now.AddDate(0, 0, 65),
		BasePrice: decimal.NewFromInt(1000),
		Currency:  "EUR",
		Capacity:  16,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))

	s.testData.room = &room.Room{
		ID:        "room_test_payment",
		RetreatID: s.testData.retreat.ID,
		Name:      "Sea View",
		Occupancy: 2,
		Quantity:  4,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RoomRepo.Create(s.GetContext(), s.testData.room))

	s.testData.booking = &booking.Booking{
		ID:             "book_test_payment",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         s.testData.room.ID,
		CustomerName:   "Elif Demir",
		CustomerEmail:  "elif@example.com",
		Guests:         2,
		BookingStatus:  types.BookingStatusPending,
		AmountTotal:    decimal.NewFromInt(1000),
		AmountPaid:     decimal.Zero,
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), s.testData.booking))

	s.testData.deposit = &payment.Schedule{
		ID:             "sched_test_deposit",
		BookingID:      s.testData.booking.ID,
		Kind:           types.ScheduleKindDeposit,
		Amount:         decimal.NewFromInt(250),
		DueDate:        now,
		ScheduleStatus: types.ScheduleStatusScheduled,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), s.testData.deposit))

	s.testData.balance = &payment.Schedule{
		ID:             "sched_test_balance",
		BookingID:      s.testData.booking.ID,
		Kind:           types.ScheduleKindBalance,
		Amount:         decimal.NewFromInt(750),
		DueDate:        now.AddDate(0, 0, 30),
		ScheduleStatus: types.ScheduleStatusScheduled,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), s.testData.balance))
}

func (s *PaymentServiceSuite) TestPickScheduleEarliestOpen() {
	svc := s.service.(*paymentService)

	sched, err := svc.pickSchedule(s.GetContext(), s.testData.booking.ID, "")
	s.NoError(err)
	s.Equal(s.testData.deposit.ID, sched.ID)

	s.testData.deposit.ScheduleStatus = types.ScheduleStatusPaid
	s.NoError(s.GetStores().ScheduleRepo.Update(s.GetContext(), s.testData.deposit))

	sched, err = svc.pickSchedule(s.GetContext(), s.testData.booking.ID, "")
	s.NoError(err)
	s.Equal(s.testData.balance.ID, sched.ID)
}

func (s *PaymentServiceSuite) TestPickScheduleRejectsForeignSchedule() {
	other := &payment.Schedule{
		ID:             "sched_test_foreign",
		BookingID:      "book_someone_else",
		Kind:           types.ScheduleKindDeposit,
		Amount:         decimal.NewFromInt(100),
		DueDate:        s.GetNow(),
		ScheduleStatus: types.ScheduleStatusScheduled,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), other))

	svc := s.service.(*paymentService)
	_, err := svc.pickSchedule(s.GetContext(), s.testData.booking.ID, other.ID)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestPickScheduleNothingLeft() {
	s.testData.deposit.ScheduleStatus = types.ScheduleStatusPaid
	s.NoError(s.GetStores().ScheduleRepo.Update(s.GetContext(), s.testData.deposit))
	s.testData.balance.ScheduleStatus = types.ScheduleStatusVoid
	s.NoError(s.GetStores().ScheduleRepo.Update(s.GetContext(), s.testData.balance))

	svc := s.service.(*paymentService)
	_, err := svc.pickSchedule(s.GetContext(), s.testData.booking.ID, "")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestRecordOfflinePaymentConfirmsBooking() {
	resp, err := s.service.RecordOfflinePayment(s.GetContext(), &dto.RecordPaymentRequest{
		BookingID:  s.testData.booking.ID,
		ScheduleID: &s.testData.deposit.ID,
		Amount:     decimal.NewFromInt(250),
		Reference:  "bank transfer 4711",
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusSucceeded, resp.PaymentStatus)
	s.Equal("manual", resp.Provider)

	b, err := s.GetStores().BookingRepo.Get(s.GetContext(), s.testData.booking.ID)
	s.NoError(err)
	s.Equal(types.BookingStatusConfirmed, b.BookingStatus)
	s.True(b.AmountPaid.Equal(decimal.NewFromInt(250)))

	sched, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), s.testData.deposit.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusPaid, sched.ScheduleStatus)
}

func (s *PaymentServiceSuite) TestRecordOfflinePaymentCancelledBooking() {
	s.testData.booking.BookingStatus = types.BookingStatusCancelled
	s.NoError(s.GetStores().BookingRepo.Update(s.GetContext(), s.testData.booking))

	_, err := s.service.RecordOfflinePayment(s.GetContext(), &dto.RecordPaymentRequest{
		BookingID: s.testData.booking.ID,
		Amount:    decimal.NewFromInt(250),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestCompletedSessionIsAppliedOnce() {
	p := &payment.Payment{
		ID:                "pay_test_webhook",
		BookingID:         s.testData.booking.ID,
		ScheduleID:        &s.testData.deposit.ID,
		Amount:            decimal.NewFromInt(250),
		Currency:          "EUR",
		Provider:          "stripe",
		ProviderSessionID: "cs_test_123",
		PaymentStatus:     types.PaymentStatusPending,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))

	svc := s.service.(*paymentService)
	session := &stripeapi.CheckoutSession{ID: "cs_test_123"}

	s.NoError(svc.handleSessionCompleted(s.GetContext(), session))

	b, err := s.GetStores().BookingRepo.Get(s.GetContext(), s.testData.booking.ID)
	s.NoError(err)
	s.Equal(types.BookingStatusConfirmed, b.BookingStatus)
	s.True(b.AmountPaid.Equal(decimal.NewFromInt(250)))

	// Replayed webhook must not double count
	s.NoError(svc.handleSessionCompleted(s.GetContext(), session))
	b, err = s.GetStores().BookingRepo.Get(s.GetContext(), s.testData.booking.ID)
	s.NoError(err)
	s.True(b.AmountPaid.Equal(decimal.NewFromInt(250)), "paid %s", b.AmountPaid)
}

func (s *PaymentServiceSuite) TestUnknownSessionIsAcknowledged() {
	svc := s.service.(*paymentService)
	s.NoError(svc.handleSessionCompleted(s.GetContext(), &stripeapi.CheckoutSession{ID: "cs_unknown"}))
}

func (s *PaymentServiceSuite) TestExpiredSessionFailsPendingPayment() {
	p := &payment.Payment{
		ID:                "pay_test_expired",
		BookingID:         s.testData.booking.ID,
		Amount:            decimal.NewFromInt(250),
		Currency:          "EUR",
		Provider:          "stripe",
		ProviderSessionID: "cs_test_expired",
		PaymentStatus:     types.PaymentStatusPending,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))

	svc := s.service.(*paymentService)
	s.NoError(svc.handleSessionExpired(s.GetContext(), &stripeapi.CheckoutSession{ID: "cs_test_expired"}))

	got, err := s.GetStores().PaymentRepo.Get(s.GetContext(), p.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusFailed, got.PaymentStatus)
}

func (s *PaymentServiceSuite) TestRefundPayment() {
	resp, err := s.service.RecordOfflinePayment(s.GetContext(), &dto.RecordPaymentRequest{
		BookingID:  s.testData.booking.ID,
		ScheduleID: &s.testData.deposit.ID,
		Amount:     decimal.NewFromInt(250),
	})
	s.NoError(err)

	refunded, err := s.service.RefundPayment(s.GetContext(), resp.Payment.ID, &dto.RefundPaymentRequest{Reason: "duplicate transfer"})
	s.NoError(err)
	s.Equal(types.PaymentStatusRefunded, refunded.PaymentStatus)

	b, err := s.GetStores().BookingRepo.Get(s.GetContext(), s.testData.booking.ID)
	s.NoError(err)
	s.True(b.AmountPaid.IsZero(), "paid %s", b.AmountPaid)
}

func (s *PaymentServiceSuite) TestRefundRequiresSucceededPayment() {
	p := &payment.Payment{
		ID:            "pay_test_pending",
		BookingID:     s.testData.booking.ID,
		Amount:        decimal.NewFromInt(250),
		Currency:      "EUR",
		Provider:      "manual",
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))

	_, err := s.service.RefundPayment(s.GetContext(), p.ID, nil)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestCreateCheckoutWithoutStripeConfigured() {
	_, err := s.service.CreateCheckout(s.GetContext(), &dto.CreateCheckoutRequest{
		BookingID: s.testData.booking.ID,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestListPaymentsByBooking() {
	_, err := s.service.RecordOfflinePayment(s.GetContext(), &dto.RecordPaymentRequest{
		BookingID: s.testData.booking.ID,
		Amount:    decimal.NewFromInt(100),
	})
	s.NoError(err)

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{BookingID: s.testData.booking.ID})
	s.NoError(err)
	s.Len(resp.Items, 1)
}

func (s *PaymentServiceSuite) TestListPaymentsTotalSpansPages() {
	for i := 0; i < 3; i++ {
		_, err := s.service.RecordOfflinePayment(s.GetContext(), &dto.RecordPaymentRequest{
			BookingID: s.testData.booking.ID,
			Amount:    decimal.NewFromInt(100),
		})
		s.NoError(err)
	}

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		QueryFilter: types.QueryFilter{Limit: lo.ToPtr(1)},
		BookingID:   s.testData.booking.ID,
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(3, resp.Pagination.Total)
}
