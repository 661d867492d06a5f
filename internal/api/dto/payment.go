package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// CreateCheckoutRequest starts a hosted checkout for an open installment
type CreateCheckoutRequest struct {
	BookingID  string `json:"booking_id" binding:"required"`
	ScheduleID string `json:"schedule_id,omitempty"`
}

// CheckoutResponse carries the hosted payment page URL
type CheckoutResponse struct {
	PaymentID   string `json:"payment_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// RecordPaymentRequest represents an admin-recorded offline payment
type RecordPaymentRequest struct {
	BookingID  string          `json:"booking_id" binding:"required"`
	ScheduleID *string         `json:"schedule_id,omitempty"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reference  string          `json:"reference,omitempty"`
}

// RefundPaymentRequest represents the request payload for refunding a payment
type RefundPaymentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PaymentResponse represents the payment response structure
type PaymentResponse struct {
	*payment.Payment
}

// ScheduleResponse represents the installment response structure
type ScheduleResponse struct {
	*payment.Schedule
}

func (r *CreateCheckoutRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid checkout payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *RecordPaymentRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid payment payload").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListPaymentsResponse represents a paginated list of payments
type ListPaymentsResponse = types.ListResponse[*PaymentResponse]
