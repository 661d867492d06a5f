package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type PromoCodeServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PromoCodeService
	testData struct {
		retreat *retreat.Retreat
	}
}

func TestPromoCodeService(t *testing.T) {
	suite.Run(t, new(PromoCodeServiceSuite))
}

func (s *PromoCodeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPromoCodeService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		RetreatRepo:   s.GetStores().RetreatRepo,
		RoomRepo:      s.GetStores().RoomRepo,
		PromoCodeRepo: s.GetStores().PromoCodeRepo,
		Cache:         s.GetCache(),
	})

	s.testData.retreat = &retreat.Retreat{
		ID:        "ret_test_promo",
		Title:     "Desert Stargazing",
		Slug:      "desert-stargazing",
		StartDate: s.GetNow().AddDate(0, 0, 30),
		EndDate:   s.GetNow().AddDate(0, 0, 34),
		BasePrice: decimal.NewFromInt(600),
		Currency:  "EUR",
		Capacity:  8,
		Published: true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().RetreatRepo.Create(s.GetContext(), s.testData.retreat))
}

func (s *PromoCodeServiceSuite) TestCreatePercentCode() {
	percentOff := decimal.NewFromInt(20)
	resp, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:       "spring20",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)
	// Codes are normalized to upper case
	s.Equal("SPRING20", resp.Code)
}

func (s *PromoCodeServiceSuite) TestCreateGeneratesCodeWhenOmitted() {
	percentOff := decimal.NewFromInt(10)
	resp, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)
	s.NotEmpty(resp.Code)
}

func (s *PromoCodeServiceSuite) TestCreateFixedWithoutAmountRejected() {
	_, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:  "BROKEN",
		Scope: types.PromoScopeGlobal,
		Type:  types.DiscountTypeFixed,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PromoCodeServiceSuite) TestCreateRetreatScopeRequiresRetreatID() {
	amountOff := decimal.NewFromInt(50)
	_, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:      "SCOPED",
		Scope:     types.PromoScopeRetreat,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PromoCodeServiceSuite) TestCreateRejectsUnknownRetreat() {
	amountOff := decimal.NewFromInt(50)
	missing := "ret_does_not_exist"
	_, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:      "SCOPED",
		Scope:     types.PromoScopeRetreat,
		RetreatID: &missing,
		Type:      types.DiscountTypeFixed,
		AmountOff: &amountOff,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PromoCodeServiceSuite) TestUpdateMaxRedemptionsBelowUsage() {
	percentOff := decimal.NewFromInt(20)
	created, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:       "USED",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)

	for i := 0; i < 3; i++ {
		s.NoError(s.GetStores().PromoCodeRepo.IncrementRedemptions(s.GetContext(), created.ID))
	}

	two := 2
	_, err = s.service.UpdatePromoCode(s.GetContext(), created.ID, &dto.UpdatePromoCodeRequest{
		MaxRedemptions: &two,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	five := 5
	resp, err := s.service.UpdatePromoCode(s.GetContext(), created.ID, &dto.UpdatePromoCodeRequest{
		MaxRedemptions: &five,
	})
	s.NoError(err)
	s.Equal(5, *resp.MaxRedemptions)
}

func (s *PromoCodeServiceSuite) TestDeleteHidesCodeFromLookup() {
	percentOff := decimal.NewFromInt(20)
	created, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:       "BYE",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)

	s.NoError(s.service.DeletePromoCode(s.GetContext(), created.ID))

	_, err = s.GetStores().PromoCodeRepo.GetByCode(s.GetContext(), "BYE")
	s.True(ierr.IsNotFound(err))
}

func (s *PromoCodeServiceSuite) TestListByScope() {
	percentOff := decimal.NewFromInt(20)
	_, err := s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:       "GLOBAL",
		Scope:      types.PromoScopeGlobal,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)
	_, err = s.service.CreatePromoCode(s.GetContext(), &dto.CreatePromoCodeRequest{
		Code:       "PERRETREAT",
		Scope:      types.PromoScopeRetreat,
		RetreatID:  &s.testData.retreat.ID,
		Type:       types.DiscountTypePercent,
		PercentOff: &percentOff,
	})
	s.NoError(err)

	scope := types.PromoScopeRetreat
	resp, err := s.service.ListPromoCodes(s.GetContext(), &types.PromoCodeFilter{Scope: &scope})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("PERRETREAT", resp.Items[0].Code)
}
