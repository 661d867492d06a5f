package types

import ierr "github.com/wildpine/wildpine/internal/errors"

// DiscountType is how a promo code discounts a booking total
type DiscountType string

const (
	DiscountTypeFixed   DiscountType = "fixed"
	DiscountTypePercent DiscountType = "percent"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypeFixed, DiscountTypePercent:
		return nil
	}
	return ierr.NewError("invalid discount type").
		WithHintf("Discount type %s is not valid", t).
		Mark(ierr.ErrValidation)
}

// PromoScope limits which retreats or rooms a promo code applies to
type PromoScope string

const (
	PromoScopeGlobal  PromoScope = "global"
	PromoScopeRetreat PromoScope = "retreat"
	PromoScopeRoom    PromoScope = "room"
)

func (s PromoScope) Validate() error {
	switch s {
	case PromoScopeGlobal, PromoScopeRetreat, PromoScopeRoom:
		return nil
	}
	return ierr.NewError("invalid promo scope").
		WithHintf("Promo scope %s is not valid", s).
		Mark(ierr.ErrValidation)
}

// DiscountSource records which rule produced the winning discount
type DiscountSource string

const (
	DiscountSourceNone      DiscountSource = "none"
	DiscountSourceEarlyBird DiscountSource = "early_bird"
	DiscountSourcePromoCode DiscountSource = "promo_code"
)

// PromoCodeFilter represents filters for promo code queries
type PromoCodeFilter struct {
	QueryFilter
	RetreatID string      `form:"retreat_id"`
	Scope     *PromoScope `form:"scope"`
}
