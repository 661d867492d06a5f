package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// CreateBookingRequest represents the request payload for creating a booking
type CreateBookingRequest struct {
	RetreatID     string `json:"retreat_id" binding:"required"`
	RoomID        string `json:"room_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	Guests        int    `json:"guests" binding:"required,min=1"`
	PromoCode     string `json:"promo_code,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// QuoteRequest represents a price preview request without creating a booking
type QuoteRequest struct {
	RetreatID string `json:"retreat_id" form:"retreat_id" binding:"required"`
	RoomID    string `json:"room_id" form:"room_id" binding:"required"`
	PromoCode string `json:"promo_code" form:"promo_code"`
}

// QuoteResponse shows the resolved price the customer would pay right now
type QuoteResponse struct {
	ListPrice      decimal.Decimal      `json:"list_price"`
	Discount       decimal.Decimal      `json:"discount"`
	DiscountSource types.DiscountSource `json:"discount_source"`
	Total          decimal.Decimal      `json:"total"`
	Currency       string               `json:"currency"`
	DepositAmount  decimal.Decimal      `json:"deposit_amount"`
	BalanceAmount  decimal.Decimal      `json:"balance_amount"`
	BalanceDueDate time.Time            `json:"balance_due_date"`
}

// BookingResponse represents the booking response structure
type BookingResponse struct {
	*booking.Booking
	Schedules []*payment.Schedule `json:"schedules,omitempty"`
	Payments  []*payment.Payment  `json:"payments,omitempty"`
}

// CancelBookingRequest represents the request payload for cancelling a booking
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AssignRoomRequest moves a booking to a different room of the same retreat
type AssignRoomRequest struct {
	RoomID string `json:"room_id" binding:"required"`
}

func (r *CreateBookingRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid booking payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *QuoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid quote payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *AssignRoomRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid room assignment payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToBooking converts the create request to a pending domain booking.
// Pricing fields are filled in by the service after discount resolution.
func (r *CreateBookingRequest) ToBooking(ctx context.Context) *booking.Booking {
	return &booking.Booking{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BOOKING),
		RetreatID:      r.RetreatID,
		RoomID:         r.RoomID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		Guests:         r.Guests,
		BookingStatus:  types.BookingStatusPending,
		DiscountSource: types.DiscountSourceNone,
		Notes:          r.Notes,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// ListBookingsResponse represents a paginated list of bookings
type ListBookingsResponse = types.ListResponse[*BookingResponse]
