package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/domain/blogpost"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/subscriber"
	"github.com/wildpine/wildpine/internal/domain/translation"
	"github.com/wildpine/wildpine/internal/domain/waitlist"
	"github.com/wildpine/wildpine/internal/email"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type CronServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  CronService
	testData struct {
		retreat *retreat.Retreat
		booking *booking.Booking
	}
}

func TestCronService(t *testing.T) {
	suite.Run(t, new(CronServiceSuite))
}

func (s *CronServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCronService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		RetreatRepo:     s.GetStores().RetreatRepo,
		RoomRepo:        s.GetStores().RoomRepo,
		BookingRepo:     s.GetStores().BookingRepo,
		PaymentRepo:     s.GetStores().PaymentRepo,
		ScheduleRepo:    s.GetStores().ScheduleRepo,
		BlogPostRepo:    s.GetStores().BlogPostRepo,
		SubscriberRepo:  s.GetStores().SubscriberRepo,
		WaitlistRepo:    s.GetStores().WaitlistRepo,
		TranslationRepo: s.GetStores().TranslationRepo,
		Email:           email.NewService(email.NewClient(s.GetConfig()), s.GetLogger()),
		Cache:           s.GetCache(),
	})
	s.setupTestData()
}

func (s *CronServiceSuite) setupTestData() {
	now := s.GetNow()

	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_cron",
		Title:     "Alpine Stillness",
		Slug:      "alpine-stillness",
		StartDate: now.AddDate(0, 0, 21),
		EndDate:   now.AddDate(0, 0, 26),
		BasePrice: decimal.NewFromInt(900),
		Currency:  "EUR",
		Capacity:  10,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))

	s.testData.booking = &booking.Booking{
		ID:             "book_test_cron",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         "room_test_cron",
		CustomerName:   "Ana Costa",
		CustomerEmail:  "ana@example.com",
		Guests:         1,
		BookingStatus:  types.BookingStatusConfirmed,
		AmountTotal:    decimal.NewFromInt(900),
		AmountPaid:     decimal.NewFromInt(225),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), s.testData.booking))
}

func (s *CronServiceSuite) seedSchedule(id string, due time.Time, status types.ScheduleStatus) *payment.Schedule {
	sched := &payment.Schedule{
		ID:             id,
		BookingID:      s.testData.booking.ID,
		Kind:           types.ScheduleKindBalance,
		Amount:         decimal.NewFromInt(675),
		DueDate:        due,
		ScheduleStatus: status,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), sched))
	return sched
}

func (s *CronServiceSuite) TestSendPaymentReminders() {
	soon := s.seedSchedule("sched_due_soon", s.GetNow().AddDate(0, 0, 3), types.ScheduleStatusScheduled)
	s.seedSchedule("sched_far_out", s.GetNow().AddDate(0, 0, 60), types.ScheduleStatusScheduled)

	resp, err := s.service.SendPaymentReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Processed)
	s.Equal(0, resp.Failed)

	got, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), soon.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusReminded, got.ScheduleStatus)
	s.NotNil(got.RemindedAt)

	// A second run finds nothing to remind
	resp, err = s.service.SendPaymentReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Processed)
}

func (s *CronServiceSuite) TestSendPaymentRemindersSkipsCancelled() {
	s.seedSchedule("sched_cancelled_booking", s.GetNow().AddDate(0, 0, 3), types.ScheduleStatusScheduled)
	s.testData.booking.BookingStatus = types.BookingStatusCancelled
	s.NoError(s.GetStores().BookingRepo.Update(s.GetContext(), s.testData.booking))

	resp, err := s.service.SendPaymentReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Processed)
}

func (s *CronServiceSuite) TestMarkOverduePayments() {
	past := s.seedSchedule("sched_past_due", s.GetNow().AddDate(0, 0, -2), types.ScheduleStatusReminded)
	s.seedSchedule("sched_not_due", s.GetNow().AddDate(0, 0, 10), types.ScheduleStatusScheduled)

	resp, err := s.service.MarkOverduePayments(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Processed)

	got, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), past.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusOverdue, got.ScheduleStatus)

	// Idempotent: already overdue installments are left alone
	resp, err = s.service.MarkOverduePayments(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Processed)
}

func (s *CronServiceSuite) TestPurgeTrash() {
	oldTrash := s.GetNow().AddDate(0, 0, -40)
	freshTrash := s.GetNow().AddDate(0, 0, -10)

	purgeable := &retreat.Retreat{
		ID:        "ret_trash_old",
		Title:     "Forgotten Retreat",
		Slug:      "forgotten-retreat",
		StartDate: s.GetNow().AddDate(0, -6, 0),
		EndDate:   s.GetNow().AddDate(0, -6, 5),
		BasePrice: decimal.NewFromInt(100),
		Currency:  "EUR",
		Capacity:  5,
		DeletedAt: &oldTrash,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), purgeable))

	kept := &blogpost.BlogPost{
		ID:        "post_trash_fresh",
		Title:     "Recently Trashed",
		Slug:      "recently-trashed",
		Body:      "text",
		DeletedAt: &freshTrash,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().BlogPostRepo.Create(s.GetContext(), kept))

	// Translations of purged entities go with them
	s.NoError(s.GetStores().TranslationRepo.Upsert(s.GetContext(), &translation.Translation{
		ID:         "tr_test_purge",
		EntityType: translation.EntityTypeRetreat,
		EntityID:   purgeable.ID,
		Locale:     "de",
		Field:      "title",
		Value:      "Vergessenes Retreat",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.PurgeTrash(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Processed)
	s.Equal(0, resp.Failed)

	_, err = s.GetStores().RetreatRepo.Get(s.GetContext(), purgeable.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.GetStores().BlogPostRepo.Get(s.GetContext(), kept.ID)
	s.NoError(err)

	translations, err := s.GetStores().TranslationRepo.GetForEntity(s.GetContext(), translation.EntityTypeRetreat, purgeable.ID, "de")
	s.NoError(err)
	s.Empty(translations)
}

func (s *CronServiceSuite) TestCompleteBookings() {
	ended := &retreat.Retreat{
		ID:        "ret_test_ended",
		Title:     "Spring Retreat",
		Slug:      "spring-retreat",
		StartDate: s.GetNow().AddDate(0, 0, -14),
		EndDate:   s.GetNow().AddDate(0, 0, -7),
		BasePrice: decimal.NewFromInt(400),
		Currency:  "EUR",
		Capacity:  8,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), ended))

	done := &booking.Booking{
		ID:             "book_test_ended",
		RetreatID:      ended.ID,
		RoomID:         "room_test_ended",
		CustomerName:   "Piotr Nowak",
		CustomerEmail:  "piotr@example.com",
		Guests:         1,
		BookingStatus:  types.BookingStatusConfirmed,
		AmountTotal:    decimal.NewFromInt(400),
		AmountPaid:     decimal.NewFromInt(400),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), done))

	resp, err := s.service.CompleteBookings(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Processed)

	got, err := s.GetStores().BookingRepo.Get(s.GetContext(), done.ID)
	s.NoError(err)
	s.Equal(types.BookingStatusCompleted, got.BookingStatus)

	// The upcoming retreat's booking stays confirmed
	got, err = s.GetStores().BookingRepo.Get(s.GetContext(), s.testData.booking.ID)
	s.NoError(err)
	s.Equal(types.BookingStatusConfirmed, got.BookingStatus)
}

func (s *CronServiceSuite) TestWeeklySummary() {
	cancelled := &booking.Booking{
		ID:             "book_test_cancelled",
		RetreatID:      s.testData.retreat.ID,
		RoomID:         "room_test_cron",
		CustomerName:   "Lea Brandt",
		CustomerEmail:  "lea@example.com",
		Guests:         1,
		BookingStatus:  types.BookingStatusCancelled,
		AmountTotal:    decimal.NewFromInt(900),
		AmountPaid:     decimal.NewFromInt(225),
		Currency:       "EUR",
		DiscountSource: types.DiscountSourceNone,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().BookingRepo.Create(s.GetContext(), cancelled))

	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), &subscriber.Subscriber{
		ID:        "sub_test_summary",
		Email:     "reader@example.com",
		Token:     types.GenerateUUID(),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().WaitlistRepo.Create(s.GetContext(), &waitlist.Entry{
		ID:             "wait_test_summary",
		RetreatID:      s.testData.retreat.ID,
		Email:          "eager@example.com",
		WaitlistStatus: types.WaitlistStatusWaiting,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.WeeklySummary(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Bookings)
	s.Equal(1, resp.Cancellations)
	s.True(resp.Revenue.Equal(decimal.NewFromInt(450)), "revenue %s", resp.Revenue)
	s.Equal("EUR", resp.Currency)
	s.Equal(1, resp.NewSubscribers)
	s.Equal(1, resp.WaitlistJoins)
	// No email provider configured in tests
	s.False(resp.EmailDispatched)
}
