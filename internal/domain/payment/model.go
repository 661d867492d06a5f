package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/types"
)

// Payment records one payment attempt against a booking
type Payment struct {
	ID         string  `db:"id" json:"id"`
	BookingID  string  `db:"booking_id" json:"booking_id"`
	ScheduleID *string `db:"schedule_id" json:"schedule_id,omitempty"`

	Amount   decimal.Decimal `db:"amount" json:"amount"`
	Currency string          `db:"currency" json:"currency"`

	Provider string `db:"provider" json:"provider"`
	// ProviderSessionID is the Stripe checkout session ID, unique so that
	// webhook replays stay idempotent
	ProviderSessionID string `db:"provider_session_id" json:"provider_session_id"`

	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`

	types.BaseModel
}

// Schedule is a planned installment (deposit or balance) tied to a booking
type Schedule struct {
	ID        string `db:"id" json:"id"`
	BookingID string `db:"booking_id" json:"booking_id"`

	Kind    types.ScheduleKind `db:"kind" json:"kind"`
	Amount  decimal.Decimal    `db:"amount" json:"amount"`
	DueDate time.Time          `db:"due_date" json:"due_date"`

	ScheduleStatus types.ScheduleStatus `db:"schedule_status" json:"schedule_status"`
	RemindedAt     *time.Time           `db:"reminded_at" json:"reminded_at,omitempty"`

	types.BaseModel
}

// DueWithin reports whether the open installment falls due within the window
func (s *Schedule) DueWithin(now time.Time, window time.Duration) bool {
	if !s.ScheduleStatus.IsOpen() {
		return false
	}
	return !s.DueDate.After(now.Add(window))
}

// IsPastDue reports whether the open installment's due date has passed
func (s *Schedule) IsPastDue(now time.Time) bool {
	return s.ScheduleStatus.IsOpen() && now.After(s.DueDate)
}
