package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	stripeClient "github.com/wildpine/wildpine/internal/integration/stripe"
	"github.com/wildpine/wildpine/internal/types"
)

const (
	providerStripe = "stripe"
	providerManual = "manual"
)

// PaymentService handles checkout, webhooks, offline payments and refunds
type PaymentService interface {
	CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	RecordOfflinePayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	RefundPayment(ctx context.Context, paymentID string, req *dto.RefundPaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

// pickSchedule selects the installment a checkout pays for: the requested
// one, or the earliest open one.
func (s *paymentService) pickSchedule(ctx context.Context, bookingID, scheduleID string) (*payment.Schedule, error) {
	if scheduleID != "" {
		sched, err := s.ScheduleRepo.Get(ctx, scheduleID)
		if err != nil {
			return nil, err
		}
		if sched.BookingID != bookingID {
			return nil, ierr.NewError("schedule does not belong to booking").
				WithHint("The installment is not part of this booking").
				Mark(ierr.ErrValidation)
		}
		if !sched.ScheduleStatus.IsOpen() {
			return nil, ierr.NewError("installment is not open").
				WithHintf("The installment is already %s", sched.ScheduleStatus).
				Mark(ierr.ErrInvalidOperation)
		}
		return sched, nil
	}

	schedules, err := s.ScheduleRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	var earliest *payment.Schedule
	for _, sched := range schedules {
		if !sched.ScheduleStatus.IsOpen() {
			continue
		}
		if earliest == nil || sched.DueDate.Before(earliest.DueDate) {
			earliest = sched
		}
	}
	if earliest == nil {
		return nil, ierr.NewError("nothing left to pay").
			WithHint("All installments of this booking are settled").
			Mark(ierr.ErrInvalidOperation)
	}
	return earliest, nil
}

func (s *paymentService) CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.BookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.BookingStatus == types.BookingStatusCancelled {
		return nil, ierr.NewError("booking is cancelled").
			WithHint("Cancelled bookings cannot be paid").
			Mark(ierr.ErrInvalidOperation)
	}

	sched, err := s.pickSchedule(ctx, b.ID, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, b.RetreatID)
	if err != nil {
		return nil, err
	}

	p := &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		BookingID:     b.ID,
		ScheduleID:    &sched.ID,
		Amount:        sched.Amount,
		Currency:      b.Currency,
		Provider:      providerStripe,
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	session, err := s.Stripe.CreateCheckoutSession(ctx, &stripeClient.CheckoutSessionRequest{
		PaymentID:     p.ID,
		BookingID:     b.ID,
		ScheduleID:    sched.ID,
		Description:   r.Title + " (" + string(sched.Kind) + ")",
		Amount:        sched.Amount,
		Currency:      b.Currency,
		CustomerEmail: b.CustomerEmail,
		SuccessURL:    s.Config.Server.BaseURL + s.Config.Stripe.SuccessPath,
		CancelURL:     s.Config.Server.BaseURL + s.Config.Stripe.CancelPath,
	})
	if err != nil {
		return nil, err
	}

	p.ProviderSessionID = session.ID
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created checkout",
		"payment_id", p.ID,
		"booking_id", b.ID,
		"session_id", session.ID)

	return &dto.CheckoutResponse{
		PaymentID:   p.ID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.Stripe.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripeapi.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return ierr.WithError(err).
				WithHint("Malformed webhook payload").
				Mark(ierr.ErrValidation)
		}
		return s.handleSessionCompleted(ctx, &session)
	case "checkout.session.expired":
		var session stripeapi.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return ierr.WithError(err).
				WithHint("Malformed webhook payload").
				Mark(ierr.ErrValidation)
		}
		return s.handleSessionExpired(ctx, &session)
	default:
		s.Logger.Debugw("ignoring webhook event", "event_type", event.Type)
		return nil
	}
}

func (s *paymentService) handleSessionCompleted(ctx context.Context, session *stripeapi.CheckoutSession) error {
	p, err := s.PaymentRepo.GetByProviderSessionID(ctx, session.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Warnw("webhook for unknown session", "session_id", session.ID)
			return nil
		}
		return err
	}
	// Replayed webhooks are acknowledged without reapplying
	if p.PaymentStatus == types.PaymentStatusSucceeded {
		s.Logger.Infow("webhook replay ignored", "payment_id", p.ID, "session_id", session.ID)
		return nil
	}
	return s.applyPayment(ctx, p)
}

func (s *paymentService) handleSessionExpired(ctx context.Context, session *stripeapi.CheckoutSession) error {
	p, err := s.PaymentRepo.GetByProviderSessionID(ctx, session.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if p.PaymentStatus != types.PaymentStatusPending {
		return nil
	}
	p.PaymentStatus = types.PaymentStatusFailed
	p.Touch(ctx)
	return s.PaymentRepo.Update(ctx, p)
}

// applyPayment settles a payment: the payment succeeds, its installment is
// paid, the booking total advances, and a newly covered deposit confirms the
// booking.
func (s *paymentService) applyPayment(ctx context.Context, p *payment.Payment) error {
	var confirmed bool
	var bookingID string

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.BookingRepo.Get(ctx, p.BookingID)
		if err != nil {
			return err
		}
		bookingID = b.ID

		p.PaymentStatus = types.PaymentStatusSucceeded
		p.Touch(ctx)
		if err := s.PaymentRepo.Update(ctx, p); err != nil {
			return err
		}

		if p.ScheduleID != nil {
			sched, err := s.ScheduleRepo.Get(ctx, *p.ScheduleID)
			if err != nil {
				return err
			}
			if sched.ScheduleStatus.IsOpen() {
				sched.ScheduleStatus = types.ScheduleStatusPaid
				sched.Touch(ctx)
				if err := s.ScheduleRepo.Update(ctx, sched); err != nil {
					return err
				}
			}
		}

		b.AmountPaid = b.AmountPaid.Add(p.Amount)
		if b.BookingStatus == types.BookingStatusPending {
			b.BookingStatus = types.BookingStatusConfirmed
			confirmed = true
		}
		b.Touch(ctx)
		return s.BookingRepo.Update(ctx, b)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("applied payment",
		"payment_id", p.ID,
		"booking_id", bookingID,
		"amount", p.Amount.String())

	if confirmed {
		s.sendConfirmation(ctx, bookingID)
	}
	return nil
}

// sendConfirmation mails the booking confirmation. Email failures are logged,
// never propagated, the payment is already settled.
func (s *paymentService) sendConfirmation(ctx context.Context, bookingID string) {
	b, err := s.BookingRepo.Get(ctx, bookingID)
	if err != nil {
		s.Logger.Errorw("failed to load booking for confirmation", "error", err)
		return
	}
	r, err := s.RetreatRepo.Get(ctx, b.RetreatID)
	if err != nil {
		s.Logger.Errorw("failed to load retreat for confirmation", "error", err)
		return
	}
	schedules, err := s.ScheduleRepo.ListByBooking(ctx, b.ID)
	if err != nil {
		s.Logger.Errorw("failed to load schedules for confirmation", "error", err)
		return
	}
	_ = s.Email.SendBookingConfirmation(ctx, b, r, schedules)
}

func (s *paymentService) RecordOfflinePayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.BookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.BookingStatus == types.BookingStatusCancelled {
		return nil, ierr.NewError("booking is cancelled").
			WithHint("Cancelled bookings cannot be paid").
			Mark(ierr.ErrInvalidOperation)
	}

	p := &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		BookingID:     b.ID,
		ScheduleID:    req.ScheduleID,
		Amount:        req.Amount,
		Currency:      b.Currency,
		Provider:      providerManual,
		PaymentStatus: types.PaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if req.Reference != "" {
		p.ProviderSessionID = req.Reference
	}
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.applyPayment(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) RefundPayment(ctx context.Context, paymentID string, req *dto.RefundPaymentRequest) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.PaymentStatus != types.PaymentStatusSucceeded {
		return nil, ierr.NewError("payment cannot be refunded").
			WithHintf("A %s payment cannot be refunded", p.PaymentStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	if p.Provider == providerStripe {
		if err := s.Stripe.RefundSession(ctx, p.ProviderSessionID); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		p.PaymentStatus = types.PaymentStatusRefunded
		p.Touch(ctx)
		if err := s.PaymentRepo.Update(ctx, p); err != nil {
			return err
		}

		b, err := s.BookingRepo.Get(ctx, p.BookingID)
		if err != nil {
			return err
		}
		b.AmountPaid = b.AmountPaid.Sub(p.Amount)
		if b.AmountPaid.LessThan(decimal.Zero) {
			b.AmountPaid = decimal.Zero
		}
		b.Touch(ctx)
		return s.BookingRepo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("refunded payment", "payment_id", p.ID, "booking_id", p.BookingID)
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, &dto.PaymentResponse{Payment: p})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
