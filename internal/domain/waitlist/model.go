package waitlist

import (
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Entry is a customer's request to be notified when a sold-out retreat or
// room frees up
type Entry struct {
	ID        string  `db:"id" json:"id"`
	RetreatID string  `db:"retreat_id" json:"retreat_id"`
	RoomID    *string `db:"room_id" json:"room_id,omitempty"`
	Email     string  `db:"email" json:"email"`
	Name      string  `db:"name" json:"name"`

	WaitlistStatus types.WaitlistStatus `db:"waitlist_status" json:"waitlist_status"`
	NotifiedAt     *time.Time           `db:"notified_at" json:"notified_at,omitempty"`

	types.BaseModel
}
