package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// BookingService manages the booking lifecycle from creation to cancellation
type BookingService interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, id string) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, filter *types.BookingFilter) (*dto.ListBookingsResponse, error)
	CancelBooking(ctx context.Context, id string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)

	// AssignRoom moves an active booking to another room of the same retreat
	AssignRoom(ctx context.Context, id string, req *dto.AssignRoomRequest) (*dto.BookingResponse, error)

	// Quote previews the price and payment schedule without booking
	Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
}

type bookingService struct {
	ServiceParams
	discountSvc DiscountService
}

func NewBookingService(params ServiceParams) BookingService {
	return &bookingService{
		ServiceParams: params,
		discountSvc:   NewDiscountService(params),
	}
}

// splitSchedule computes the deposit and balance installments for a total.
// Bookings made inside the balance window collapse into a single installment
// due immediately.
func (s *bookingService) splitSchedule(total decimal.Decimal, startDate, now time.Time) (deposit, balance decimal.Decimal, balanceDue time.Time) {
	depositPercent := decimal.NewFromInt(int64(s.Config.Booking.DepositPercent))
	deposit = total.Mul(depositPercent).Div(decimal.NewFromInt(100)).Round(2)
	balance = total.Sub(deposit)
	balanceDue = startDate.AddDate(0, 0, -s.Config.Booking.BalanceDueDays)

	if !balanceDue.After(now) {
		deposit = total
		balance = decimal.Zero
		balanceDue = now
	}
	return deposit, balance, balanceDue
}

func (s *bookingService) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, req.RetreatID)
	if err != nil {
		return nil, err
	}
	rm, err := s.RoomRepo.Get(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.RetreatID != r.ID {
		return nil, ierr.NewError("room does not belong to retreat").
			WithHint("The room is not part of this retreat").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()
	res, err := s.discountSvc.Resolve(ctx, r, rm, req.PromoCode, now)
	if err != nil {
		return nil, err
	}

	deposit, balance, balanceDue := s.splitSchedule(res.Total, r.StartDate, now)
	return &dto.QuoteResponse{
		ListPrice:      res.ListPrice,
		Discount:       res.Discount,
		DiscountSource: res.Source,
		Total:          res.Total,
		Currency:       r.Currency,
		DepositAmount:  deposit,
		BalanceAmount:  balance,
		BalanceDueDate: balanceDue,
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	r, err := s.RetreatRepo.Get(ctx, req.RetreatID)
	if err != nil {
		return nil, err
	}
	if !r.IsBookable(now) {
		return nil, ierr.NewError("retreat is not bookable").
			WithHint("This retreat is not open for bookings").
			Mark(ierr.ErrInvalidOperation)
	}

	rm, err := s.RoomRepo.Get(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.RetreatID != r.ID {
		return nil, ierr.NewError("room does not belong to retreat").
			WithHint("The room is not part of this retreat").
			Mark(ierr.ErrValidation)
	}
	if req.Guests > rm.Occupancy {
		return nil, ierr.NewError("too many guests for room").
			WithHintf("The room sleeps at most %d guests", rm.Occupancy).
			Mark(ierr.ErrValidation)
	}

	window := time.Duration(s.Config.Booking.DuplicateWindowHours) * time.Hour
	dup, err := s.BookingRepo.ExistsRecent(ctx, r.ID, req.CustomerEmail, now.Add(-window))
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ierr.NewError("duplicate booking").
			WithHint("A booking for this retreat with this email was made recently").
			Mark(ierr.ErrAlreadyExists)
	}

	b := req.ToBooking(ctx)
	var schedules []*payment.Schedule

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		held, err := s.RoomRepo.CountHeldBookings(ctx, rm.ID)
		if err != nil {
			return err
		}
		if held >= rm.Quantity {
			return ierr.NewError("room is sold out").
				WithHint("No more rooms of this type are available").
				Mark(ierr.ErrInvalidOperation)
		}

		res, err := s.discountSvc.Resolve(ctx, r, rm, req.PromoCode, now)
		if err != nil {
			return err
		}
		if res.PromoCode != nil {
			// The atomic guard keeps concurrent bookings from blowing
			// past the redemption limit
			if err := s.PromoCodeRepo.IncrementRedemptions(ctx, res.PromoCode.ID); err != nil {
				if ierr.IsInvalidOperation(err) {
					return ierr.NewError("promo code exhausted").
						WithHintf("Promo code %s has reached its usage limit", res.PromoCode.Code).
						Mark(ierr.ErrValidation)
				}
				return err
			}
			b.PromoCodeID = &res.PromoCode.ID
		}

		b.AmountTotal = res.Total
		b.AmountPaid = decimal.Zero
		b.Currency = r.Currency
		b.DiscountApplied = res.Discount
		b.DiscountSource = res.Source

		if err := s.BookingRepo.Create(ctx, b); err != nil {
			return err
		}

		deposit, balance, balanceDue := s.splitSchedule(res.Total, r.StartDate, now)
		if deposit.GreaterThan(decimal.Zero) {
			sched := &payment.Schedule{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_SCHEDULE),
				BookingID:      b.ID,
				Kind:           types.ScheduleKindDeposit,
				Amount:         deposit,
				DueDate:        now,
				ScheduleStatus: types.ScheduleStatusScheduled,
				BaseModel:      types.GetDefaultBaseModel(ctx),
			}
			if err := s.ScheduleRepo.Create(ctx, sched); err != nil {
				return err
			}
			schedules = append(schedules, sched)
		}
		if balance.GreaterThan(decimal.Zero) {
			sched := &payment.Schedule{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_SCHEDULE),
				BookingID:      b.ID,
				Kind:           types.ScheduleKindBalance,
				Amount:         balance,
				DueDate:        balanceDue,
				ScheduleStatus: types.ScheduleStatusScheduled,
				BaseModel:      types.GetDefaultBaseModel(ctx),
			}
			if err := s.ScheduleRepo.Create(ctx, sched); err != nil {
				return err
			}
			schedules = append(schedules, sched)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created booking",
		"booking_id", b.ID,
		"retreat_id", r.ID,
		"room_id", rm.ID,
		"total", b.AmountTotal.String(),
		"discount_source", b.DiscountSource)

	if err := s.Email.SendBookingConfirmation(ctx, b, r, schedules); err != nil {
		s.Logger.Errorw("failed to send booking confirmation", "error", err, "booking_id", b.ID)
	}

	return &dto.BookingResponse{Booking: b, Schedules: schedules}, nil
}

func (s *bookingService) AssignRoom(ctx context.Context, id string, req *dto.AssignRoomRequest) (*dto.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.BookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.CanCancel() {
		return nil, ierr.NewError("booking is not active").
			WithHintf("A %s booking cannot be moved to another room", b.BookingStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if b.RoomID == req.RoomID {
		return nil, ierr.NewError("booking already uses this room").
			WithHint("The booking is already assigned to this room").
			Mark(ierr.ErrValidation)
	}

	rm, err := s.RoomRepo.Get(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.RetreatID != b.RetreatID {
		return nil, ierr.NewError("room does not belong to retreat").
			WithHint("The room is not part of this booking's retreat").
			Mark(ierr.ErrValidation)
	}
	if b.Guests > rm.Occupancy {
		return nil, ierr.NewError("too many guests for room").
			WithHintf("The room sleeps at most %d guests", rm.Occupancy).
			Mark(ierr.ErrValidation)
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		held, err := s.RoomRepo.CountHeldBookings(ctx, rm.ID)
		if err != nil {
			return err
		}
		if held >= rm.Quantity {
			return ierr.NewError("room is sold out").
				WithHint("No more rooms of this type are available").
				Mark(ierr.ErrInvalidOperation)
		}

		b.RoomID = rm.ID
		b.Touch(ctx)
		return s.BookingRepo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("reassigned booking room", "booking_id", b.ID, "room_id", rm.ID)
	return s.GetBooking(ctx, id)
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := s.BookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	schedules, err := s.ScheduleRepo.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BookingResponse{Booking: b, Schedules: schedules, Payments: payments}, nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter *types.BookingFilter) (*dto.ListBookingsResponse, error) {
	if filter == nil {
		filter = &types.BookingFilter{}
	}

	bookings, err := s.BookingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.BookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, &dto.BookingResponse{Booking: b})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	b, err := s.BookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.CanCancel() {
		return nil, ierr.NewError("booking cannot be cancelled").
			WithHintf("A %s booking cannot be cancelled", b.BookingStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		b.BookingStatus = types.BookingStatusCancelled
		if req != nil && req.Reason != "" {
			if b.Notes != "" {
				b.Notes += "\n"
			}
			b.Notes += "Cancelled: " + req.Reason
		}
		b.Touch(ctx)
		if err := s.BookingRepo.Update(ctx, b); err != nil {
			return err
		}

		schedules, err := s.ScheduleRepo.ListByBooking(ctx, id)
		if err != nil {
			return err
		}
		for _, sched := range schedules {
			if !sched.ScheduleStatus.IsOpen() {
				continue
			}
			sched.ScheduleStatus = types.ScheduleStatusVoid
			sched.Touch(ctx)
			if err := s.ScheduleRepo.Update(ctx, sched); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled booking", "booking_id", id)
	s.notifyWaitlist(ctx, b)

	return s.GetBooking(ctx, id)
}

// notifyWaitlist offers the freed spot to the longest-waiting entry. A
// notification failure never fails the cancellation.
func (s *bookingService) notifyWaitlist(ctx context.Context, b *booking.Booking) {
	entry, err := s.WaitlistRepo.OldestWaiting(ctx, b.RetreatID, &b.RoomID)
	if err != nil {
		s.Logger.Errorw("failed to look up waitlist", "error", err, "retreat_id", b.RetreatID)
		return
	}
	if entry == nil {
		return
	}

	r, err := s.RetreatRepo.Get(ctx, b.RetreatID)
	if err != nil {
		s.Logger.Errorw("failed to load retreat for waitlist notify", "error", err)
		return
	}
	if err := s.Email.SendWaitlistSpot(ctx, entry.Email, entry.Name, r); err != nil {
		return
	}

	now := time.Now().UTC()
	entry.WaitlistStatus = types.WaitlistStatusNotified
	entry.NotifiedAt = &now
	entry.Touch(ctx)
	if err := s.WaitlistRepo.Update(ctx, entry); err != nil {
		s.Logger.Errorw("failed to mark waitlist entry notified", "error", err, "entry_id", entry.ID)
	}
}
