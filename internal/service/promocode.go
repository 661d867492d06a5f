package service

import (
	"context"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// PromoCodeService manages discount codes
type PromoCodeService interface {
	CreatePromoCode(ctx context.Context, req *dto.CreatePromoCodeRequest) (*dto.PromoCodeResponse, error)
	GetPromoCode(ctx context.Context, id string) (*dto.PromoCodeResponse, error)
	UpdatePromoCode(ctx context.Context, id string, req *dto.UpdatePromoCodeRequest) (*dto.PromoCodeResponse, error)
	DeletePromoCode(ctx context.Context, id string) error
	ListPromoCodes(ctx context.Context, filter *types.PromoCodeFilter) (*dto.ListPromoCodesResponse, error)
}

type promoCodeService struct {
	ServiceParams
}

func NewPromoCodeService(params ServiceParams) PromoCodeService {
	return &promoCodeService{ServiceParams: params}
}

func (s *promoCodeService) CreatePromoCode(ctx context.Context, req *dto.CreatePromoCodeRequest) (*dto.PromoCodeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPromoCode(ctx)

	// Scope targets must exist before the code goes live
	if p.RetreatID != nil {
		if _, err := s.RetreatRepo.Get(ctx, *p.RetreatID); err != nil {
			return nil, err
		}
	}
	if p.RoomID != nil {
		if _, err := s.RoomRepo.Get(ctx, *p.RoomID); err != nil {
			return nil, err
		}
	}

	if err := s.PromoCodeRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created promo code", "promo_code_id", p.ID, "code", p.Code)
	return &dto.PromoCodeResponse{PromoCode: p}, nil
}

func (s *promoCodeService) GetPromoCode(ctx context.Context, id string) (*dto.PromoCodeResponse, error) {
	p, err := s.PromoCodeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PromoCodeResponse{PromoCode: p}, nil
}

func (s *promoCodeService) UpdatePromoCode(ctx context.Context, id string, req *dto.UpdatePromoCodeRequest) (*dto.PromoCodeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PromoCodeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaxRedemptions != nil {
		if *req.MaxRedemptions < p.TotalRedemptions {
			return nil, ierr.NewError("max redemptions below current usage").
				WithHintf("The code has already been redeemed %d times", p.TotalRedemptions).
				Mark(ierr.ErrInvalidOperation)
		}
		p.MaxRedemptions = req.MaxRedemptions
	}
	if req.ValidFrom != nil {
		p.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		p.ValidUntil = req.ValidUntil
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	p.Touch(ctx)

	if err := s.PromoCodeRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PromoCodeResponse{PromoCode: p}, nil
}

func (s *promoCodeService) DeletePromoCode(ctx context.Context, id string) error {
	if _, err := s.PromoCodeRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.PromoCodeRepo.Delete(ctx, id)
}

func (s *promoCodeService) ListPromoCodes(ctx context.Context, filter *types.PromoCodeFilter) (*dto.ListPromoCodesResponse, error) {
	if filter == nil {
		filter = &types.PromoCodeFilter{}
	}

	codes, err := s.PromoCodeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PromoCodeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PromoCodeResponse, 0, len(codes))
	for _, p := range codes {
		items = append(items, &dto.PromoCodeResponse{PromoCode: p})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
