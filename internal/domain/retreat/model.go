package retreat

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/types"
)

// Retreat is a bookable multi-day trip offering
type Retreat struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Slug        string          `db:"slug" json:"slug"`
	Summary     string          `db:"summary" json:"summary"`
	Description string          `db:"description" json:"description"`
	Location    string          `db:"location" json:"location"`
	StartDate   time.Time       `db:"start_date" json:"start_date"`
	EndDate     time.Time       `db:"end_date" json:"end_date"`
	BasePrice   decimal.Decimal `db:"base_price" json:"base_price"`
	Currency    string          `db:"currency" json:"currency"`
	Capacity    int             `db:"capacity" json:"capacity"`

	// Early-bird discount, a percentage off the base price for bookings
	// made before EarlyBirdUntil. Zero percent disables it.
	EarlyBirdPercent decimal.Decimal `db:"early_bird_percent" json:"early_bird_percent"`
	EarlyBirdUntil   *time.Time      `db:"early_bird_until" json:"early_bird_until,omitempty"`

	Published bool       `db:"published" json:"published"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	types.BaseModel
}

// IsTrashed reports whether the retreat sits in the trash
func (r *Retreat) IsTrashed() bool {
	return r.DeletedAt != nil
}

// IsBookable reports whether the retreat accepts new bookings at the given time
func (r *Retreat) IsBookable(now time.Time) bool {
	return r.Published && !r.IsTrashed() && now.Before(r.StartDate)
}

// EarlyBirdDiscount returns the early-bird discount on the given amount at
// booking time, or zero when the window is closed or not configured.
func (r *Retreat) EarlyBirdDiscount(amount decimal.Decimal, now time.Time) decimal.Decimal {
	if r.EarlyBirdPercent.LessThanOrEqual(decimal.Zero) || r.EarlyBirdUntil == nil {
		return decimal.Zero
	}
	if now.After(*r.EarlyBirdUntil) {
		return decimal.Zero
	}
	return amount.Mul(r.EarlyBirdPercent).Div(decimal.NewFromInt(100)).Round(2)
}

// PurgeEligibleAt returns when the trashed retreat becomes eligible for
// permanent deletion. Zero time when not trashed.
func (r *Retreat) PurgeEligibleAt(retention time.Duration) time.Time {
	if r.DeletedAt == nil {
		return time.Time{}
	}
	return r.DeletedAt.Add(retention)
}
