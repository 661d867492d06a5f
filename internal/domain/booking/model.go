package booking

import (
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/types"
)

// Booking is a customer's reservation of a retreat room
type Booking struct {
	ID            string              `db:"id" json:"id"`
	RetreatID     string              `db:"retreat_id" json:"retreat_id"`
	RoomID        string              `db:"room_id" json:"room_id"`
	CustomerName  string              `db:"customer_name" json:"customer_name"`
	CustomerEmail string              `db:"customer_email" json:"customer_email"`
	Guests        int                 `db:"guests" json:"guests"`
	BookingStatus types.BookingStatus `db:"booking_status" json:"booking_status"`

	// AmountTotal is the discounted total owed for the booking
	AmountTotal decimal.Decimal `db:"amount_total" json:"amount_total"`
	AmountPaid  decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	Currency    string          `db:"currency" json:"currency"`

	PromoCodeID     *string              `db:"promo_code_id" json:"promo_code_id,omitempty"`
	DiscountApplied decimal.Decimal      `db:"discount_applied" json:"discount_applied"`
	DiscountSource  types.DiscountSource `db:"discount_source" json:"discount_source"`

	Notes string `db:"notes" json:"notes"`

	types.BaseModel
}

// IsPaidInFull reports whether payments cover the booking total
func (b *Booking) IsPaidInFull() bool {
	return b.AmountPaid.GreaterThanOrEqual(b.AmountTotal)
}

// CanCancel reports whether the booking may transition to cancelled
func (b *Booking) CanCancel() bool {
	return b.BookingStatus == types.BookingStatusPending ||
		b.BookingStatus == types.BookingStatusConfirmed
}
