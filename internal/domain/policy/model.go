package policy

import (
	"time"

	"github.com/wildpine/wildpine/internal/types"
)

// Policy is a versioned content page (terms, cancellation policy, privacy)
type Policy struct {
	ID          string    `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	Version     int       `db:"version" json:"version"`
	EffectiveAt time.Time `db:"effective_at" json:"effective_at"`

	types.BaseModel
}
