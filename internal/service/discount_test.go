package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/domain/promocode"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type DiscountServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DiscountService
	testData struct {
		retreat *retreat.Retreat
		room    *room.Room
	}
}

func TestDiscountService(t *testing.T) {
	suite.Run(t, new(DiscountServiceSuite))
}

func (s *DiscountServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDiscountService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		PromoCodeRepo: s.GetStores().PromoCodeRepo,
	})
	s.setupTestData()
}

func (s *DiscountServiceSuite) setupTestData() {
	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_discount",
		Title:     "Winter Silence",
		Slug:      "winter-silence",
		StartDate: s.GetNow().AddDate(0, 0, 90),
		EndDate:   s.GetNow().AddDate(0, 0, 95),
		BasePrice: decimal.NewFromInt(800),
		Currency:  "EUR",
		Capacity:  12,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.testData.room = &room.Room{
		ID:        "room_test_discount",
		RetreatID: s.testData.retreat.ID,
		Name:      "Shared Dorm",
		Occupancy: 1,
		Quantity:  6,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
}

func (s *DiscountServiceSuite) seedPromo(p *promocode.PromoCode) *promocode.PromoCode {
	p.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), p))
	return p
}

func (s *DiscountServiceSuite) TestNoDiscount() {
	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.IsZero())
	s.Equal(types.DiscountSourceNone, res.Source)
	s.True(res.Total.Equal(decimal.NewFromInt(800)))
	s.Nil(res.PromoCode)
}

func (s *DiscountServiceSuite) TestEarlyBirdInsideWindow() {
	until := s.GetNow().AddDate(0, 0, 14)
	s.testData.retreat.EarlyBirdPercent = decimal.NewFromInt(15)
	s.testData.retreat.EarlyBirdUntil = &until

	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(120)), "discount %s", res.Discount)
	s.Equal(types.DiscountSourceEarlyBird, res.Source)
	s.True(res.Total.Equal(decimal.NewFromInt(680)))
}

func (s *DiscountServiceSuite) TestEarlyBirdExpired() {
	until := s.GetNow().AddDate(0, 0, -1)
	s.testData.retreat.EarlyBirdPercent = decimal.NewFromInt(15)
	s.testData.retreat.EarlyBirdUntil = &until

	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.IsZero())
	s.Equal(types.DiscountSourceNone, res.Source)
}

func (s *DiscountServiceSuite) TestPromoBeatsSmallerEarlyBird() {
	until := s.GetNow().AddDate(0, 0, 14)
	s.testData.retreat.EarlyBirdPercent = decimal.NewFromInt(5)
	s.testData.retreat.EarlyBirdUntil = &until

	amountOff := decimal.NewFromInt(100)
	s.seedPromo(&promocode.PromoCode{
		ID:        "promo_test_big",
		Code:      "BIG100",
		Scope:     types.PromoScopeGlobal,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})

	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "big100", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(100)))
	s.Equal(types.DiscountSourcePromoCode, res.Source)
	s.NotNil(res.PromoCode)
}

func (s *DiscountServiceSuite) TestEarlyBirdBeatsSmallerPromo() {
	until := s.GetNow().AddDate(0, 0, 14)
	s.testData.retreat.EarlyBirdPercent = decimal.NewFromInt(20)
	s.testData.retreat.EarlyBirdUntil = &until

	amountOff := decimal.NewFromInt(50)
	s.seedPromo(&promocode.PromoCode{
		ID:        "promo_test_small",
		Code:      "SMALL50",
		Scope:     types.PromoScopeGlobal,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})

	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "SMALL50", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(160)), "discount %s", res.Discount)
	s.Equal(types.DiscountSourceEarlyBird, res.Source)
	// The losing code is not redeemed
	s.Nil(res.PromoCode)
}

func (s *DiscountServiceSuite) TestUnknownCode() {
	_, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "NOPE", s.GetNow())
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DiscountServiceSuite) TestExpiredCode() {
	validUntil := s.GetNow().Add(-time.Hour)
	amountOff := decimal.NewFromInt(100)
	s.seedPromo(&promocode.PromoCode{
		ID:         "promo_test_expired",
		Code:       "GONE",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypeFixed,
		AmountOff:  &amountOff,
		ValidUntil: &validUntil,
	})

	_, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "GONE", s.GetNow())
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DiscountServiceSuite) TestScopedCodeWrongRetreat() {
	otherRetreat := "ret_not_this_one"
	amountOff := decimal.NewFromInt(100)
	s.seedPromo(&promocode.PromoCode{
		ID:        "promo_test_scoped",
		Code:      "SCOPED",
		Scope:     types.PromoScopeRetreat,
		RetreatID: &otherRetreat,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})

	_, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "SCOPED", s.GetNow())
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DiscountServiceSuite) TestDiscountNeverExceedsListPrice() {
	amountOff := decimal.NewFromInt(5000)
	s.seedPromo(&promocode.PromoCode{
		ID:        "promo_test_huge",
		Code:      "HUGE",
		Scope:     types.PromoScopeGlobal,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})

	res, err := s.service.Resolve(s.GetContext(), s.testData.retreat, s.testData.room, "HUGE", s.GetNow())
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(800)))
	s.True(res.Total.IsZero())
}
