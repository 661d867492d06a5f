package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/promocode"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// DiscountResult is the outcome of resolving the best discount for a booking
type DiscountResult struct {
	ListPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Source    types.DiscountSource
	// PromoCode is set when the promo code produced the winning discount
	PromoCode *promocode.PromoCode
}

// DiscountService resolves the discount a booking gets. Early-bird pricing
// and promo codes never stack: the larger discount wins, and a promo code
// wins ties so the customer's code never silently does nothing.
type DiscountService interface {
	Resolve(ctx context.Context, r *retreat.Retreat, rm *room.Room, code string, now time.Time) (*DiscountResult, error)
}

type discountService struct {
	ServiceParams
}

func NewDiscountService(params ServiceParams) DiscountService {
	return &discountService{ServiceParams: params}
}

func (s *discountService) Resolve(ctx context.Context, r *retreat.Retreat, rm *room.Room, code string, now time.Time) (*DiscountResult, error) {
	listPrice := rm.Price(r.BasePrice)

	result := &DiscountResult{
		ListPrice: listPrice,
		Discount:  decimal.Zero,
		Total:     listPrice,
		Source:    types.DiscountSourceNone,
	}

	earlyBird := r.EarlyBirdDiscount(listPrice, now)
	if earlyBird.GreaterThan(decimal.Zero) {
		result.Discount = earlyBird
		result.Source = types.DiscountSourceEarlyBird
	}

	code = strings.TrimSpace(code)
	if code != "" {
		promo, err := s.PromoCodeRepo.GetByCode(ctx, code)
		if err != nil {
			if ierr.IsNotFound(err) {
				return nil, ierr.NewError("unknown promo code").
					WithHintf("Promo code %s does not exist", code).
					Mark(ierr.ErrValidation)
			}
			return nil, err
		}
		if !promo.IsValidAt(now) {
			return nil, ierr.NewError("promo code is not valid").
				WithHintf("Promo code %s has expired or reached its usage limit", promo.Code).
				Mark(ierr.ErrValidation)
		}
		if !promo.AppliesTo(r.ID, rm.ID) {
			return nil, ierr.NewError("promo code does not apply").
				WithHintf("Promo code %s does not apply to this retreat or room", promo.Code).
				Mark(ierr.ErrValidation)
		}

		promoDiscount := promo.CalculateDiscount(listPrice)
		// Ties go to the promo code
		if promoDiscount.GreaterThanOrEqual(result.Discount) {
			result.Discount = promoDiscount
			result.Source = types.DiscountSourcePromoCode
			result.PromoCode = promo
		} else {
			s.Logger.Infow("early bird beats promo code",
				"promo_code", promo.Code,
				"early_bird", earlyBird.String(),
				"promo_discount", promoDiscount.String())
		}
	}

	result.Total = listPrice.Sub(result.Discount)
	if result.Total.LessThan(decimal.Zero) {
		result.Total = decimal.Zero
	}
	return result, nil
}
