package promocode

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/types"
)

// PromoCode is a discount code with scope, usage limits and a validity window
type PromoCode struct {
	ID    string           `db:"id" json:"id"`
	Code  string           `db:"code" json:"code"`
	Scope types.PromoScope `db:"scope" json:"scope"`
	// RetreatID and RoomID narrow the scope when set
	RetreatID *string `db:"retreat_id" json:"retreat_id,omitempty"`
	RoomID    *string `db:"room_id" json:"room_id,omitempty"`

	Type       types.DiscountType `db:"type" json:"type"`
	AmountOff  *decimal.Decimal   `db:"amount_off" json:"amount_off,omitempty"`
	PercentOff *decimal.Decimal   `db:"percent_off" json:"percent_off,omitempty"`

	MaxRedemptions   *int `db:"max_redemptions" json:"max_redemptions,omitempty"`
	TotalRedemptions int  `db:"total_redemptions" json:"total_redemptions"`

	ValidFrom  *time.Time `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil *time.Time `db:"valid_until" json:"valid_until,omitempty"`

	types.BaseModel
}

// IsValidAt checks the validity window and usage limit at the given instant
func (p *PromoCode) IsValidAt(now time.Time) bool {
	if p.Status != types.StatusPublished {
		return false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}
	if p.MaxRedemptions != nil && p.TotalRedemptions >= *p.MaxRedemptions {
		return false
	}
	return true
}

// AppliesTo checks the code's scope against a retreat and room
func (p *PromoCode) AppliesTo(retreatID, roomID string) bool {
	switch p.Scope {
	case types.PromoScopeGlobal:
		return true
	case types.PromoScopeRetreat:
		return p.RetreatID != nil && *p.RetreatID == retreatID
	case types.PromoScopeRoom:
		return p.RoomID != nil && *p.RoomID == roomID
	}
	return false
}

// CalculateDiscount computes the discount the code grants on the given amount.
// The result never exceeds the amount itself.
func (p *PromoCode) CalculateDiscount(amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.Type {
	case types.DiscountTypeFixed:
		if p.AmountOff == nil {
			return decimal.Zero
		}
		discount = *p.AmountOff
	case types.DiscountTypePercent:
		if p.PercentOff == nil {
			return decimal.Zero
		}
		discount = amount.Mul(*p.PercentOff).Div(decimal.NewFromInt(100)).Round(2)
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(amount) {
		return amount
	}
	if discount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return discount
}
