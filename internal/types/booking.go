package types

import ierr "github.com/wildpine/wildpine/internal/errors"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) Validate() error {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return nil
	}
	return ierr.NewError("invalid booking status").
		WithHintf("Booking status %s is not valid", s).
		Mark(ierr.ErrValidation)
}

// HoldsInventory reports whether a booking in this state counts against the
// room's quantity.
func (s BookingStatus) HoldsInventory() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// BookingFilter represents filters for booking queries
type BookingFilter struct {
	QueryFilter
	RetreatID     string         `form:"retreat_id"`
	RoomID        string         `form:"room_id"`
	CustomerEmail string         `form:"customer_email"`
	BookingStatus *BookingStatus `form:"booking_status"`
}
