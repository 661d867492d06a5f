package dto

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/promocode"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// CreatePromoCodeRequest represents the request payload for creating a promo code
type CreatePromoCodeRequest struct {
	// Code is optional, a short random code is generated when omitted
	Code      string           `json:"code,omitempty" example:"SPRING25"`
	Scope     types.PromoScope `json:"scope" binding:"required"`
	RetreatID *string          `json:"retreat_id,omitempty"`
	RoomID    *string          `json:"room_id,omitempty"`

	Type       types.DiscountType `json:"type" binding:"required"`
	AmountOff  *decimal.Decimal   `json:"amount_off,omitempty"`
	PercentOff *decimal.Decimal   `json:"percent_off,omitempty"`

	MaxRedemptions *int       `json:"max_redemptions,omitempty"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
}

// UpdatePromoCodeRequest represents the request payload for updating a promo code
type UpdatePromoCodeRequest struct {
	MaxRedemptions *int          `json:"max_redemptions,omitempty"`
	ValidFrom      *time.Time    `json:"valid_from,omitempty"`
	ValidUntil     *time.Time    `json:"valid_until,omitempty"`
	Status         *types.Status `json:"status,omitempty"`
}

// PromoCodeResponse represents the promo code response structure
type PromoCodeResponse struct {
	*promocode.PromoCode
}

func (r *CreatePromoCodeRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid promo code payload").
			Mark(ierr.ErrValidation)
	}
	if err := r.Scope.Validate(); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	switch r.Scope {
	case types.PromoScopeRetreat:
		if r.RetreatID == nil {
			return ierr.NewError("retreat scope requires retreat_id").
				WithHint("Retreat-scoped codes need a retreat_id").
				Mark(ierr.ErrValidation)
		}
	case types.PromoScopeRoom:
		if r.RoomID == nil {
			return ierr.NewError("room scope requires room_id").
				WithHint("Room-scoped codes need a room_id").
				Mark(ierr.ErrValidation)
		}
	}
	switch r.Type {
	case types.DiscountTypeFixed:
		if r.AmountOff == nil || r.AmountOff.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("fixed discount requires positive amount_off").
				WithHint("Fixed codes need a positive amount_off").
				Mark(ierr.ErrValidation)
		}
	case types.DiscountTypePercent:
		if r.PercentOff == nil || r.PercentOff.LessThanOrEqual(decimal.Zero) ||
			r.PercentOff.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("percent discount out of range").
				WithHint("Percent codes need percent_off between 0 and 100").
				Mark(ierr.ErrValidation)
		}
	}
	if r.MaxRedemptions != nil && *r.MaxRedemptions < 1 {
		return ierr.NewError("max redemptions must be positive").
			WithHint("Max redemptions must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidUntil.Before(*r.ValidFrom) {
		return ierr.NewError("validity window inverted").
			WithHint("valid_until must not precede valid_from").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdatePromoCodeRequest) Validate() error {
	if r.MaxRedemptions != nil && *r.MaxRedemptions < 1 {
		return ierr.NewError("max redemptions must be positive").
			WithHint("Max redemptions must be at least 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPromoCode converts the create request to a domain promo code.
// Codes are stored uppercase and matched case-insensitively.
func (r *CreatePromoCodeRequest) ToPromoCode(ctx context.Context) *promocode.PromoCode {
	code := strings.ToUpper(strings.TrimSpace(r.Code))
	if code == "" {
		code = types.GenerateShortCode("WP")
	}
	return &promocode.PromoCode{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMO_CODE),
		Code:           code,
		Scope:          r.Scope,
		RetreatID:      r.RetreatID,
		RoomID:         r.RoomID,
		Type:           r.Type,
		AmountOff:      r.AmountOff,
		PercentOff:     r.PercentOff,
		MaxRedemptions: r.MaxRedemptions,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// ListPromoCodesResponse represents a paginated list of promo codes
type ListPromoCodesResponse = types.ListResponse[*PromoCodeResponse]
