package types

// WaitlistStatus is the state of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusNotified  WaitlistStatus = "notified"
	WaitlistStatusConverted WaitlistStatus = "converted"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

func (s WaitlistStatus) String() string {
	return string(s)
}

// WaitlistFilter represents filters for waitlist queries
type WaitlistFilter struct {
	QueryFilter
	RetreatID      string          `form:"retreat_id"`
	RoomID         string          `form:"room_id"`
	WaitlistStatus *WaitlistStatus `form:"waitlist_status"`
}

// SubscriberFilter represents filters for newsletter subscriber queries
type SubscriberFilter struct {
	QueryFilter
	ConfirmedOnly bool `form:"confirmed_only"`
}
