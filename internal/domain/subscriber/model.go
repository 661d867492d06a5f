package subscriber

import (
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Subscriber is a newsletter recipient with double-opt-in state
type Subscriber struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`

	// Token authenticates confirm and unsubscribe links
	Token string `db:"token" json:"-"`

	ConfirmedAt    *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`

	types.BaseModel
}

// IsMailable reports whether campaigns may be sent to the subscriber
func (s *Subscriber) IsMailable() bool {
	return s.ConfirmedAt != nil && s.UnsubscribedAt == nil
}
