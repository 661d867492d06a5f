package types

import ierr "github.com/wildpine/wildpine/internal/errors"

// PaymentStatus is the state of an individual payment attempt
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// ScheduleKind distinguishes the deposit installment from the balance
type ScheduleKind string

const (
	ScheduleKindDeposit ScheduleKind = "deposit"
	ScheduleKindBalance ScheduleKind = "balance"
)

// ScheduleStatus is the state machine for a planned installment.
// Transitions: scheduled -> reminded -> overdue, any unpaid state -> paid,
// cancellation voids whatever is still open.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusReminded  ScheduleStatus = "reminded"
	ScheduleStatusOverdue   ScheduleStatus = "overdue"
	ScheduleStatusPaid      ScheduleStatus = "paid"
	ScheduleStatusVoid      ScheduleStatus = "void"
)

func (s ScheduleStatus) String() string {
	return string(s)
}

// IsOpen reports whether the installment still expects money
func (s ScheduleStatus) IsOpen() bool {
	switch s {
	case ScheduleStatusScheduled, ScheduleStatusReminded, ScheduleStatusOverdue:
		return true
	}
	return false
}

func (s ScheduleStatus) Validate() error {
	switch s {
	case ScheduleStatusScheduled, ScheduleStatusReminded, ScheduleStatusOverdue, ScheduleStatusPaid, ScheduleStatusVoid:
		return nil
	}
	return ierr.NewError("invalid schedule status").
		WithHintf("Schedule status %s is not valid", s).
		Mark(ierr.ErrValidation)
}

// PaymentFilter represents filters for payment queries
type PaymentFilter struct {
	QueryFilter
	BookingID     string         `form:"booking_id"`
	PaymentStatus *PaymentStatus `form:"payment_status"`
}
