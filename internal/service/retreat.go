package service

import (
	"context"
	"strings"
	"time"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/cache"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	domainTranslation "github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// RetreatService manages retreats, their rooms and the trash lifecycle
type RetreatService interface {
	CreateRetreat(ctx context.Context, req *dto.CreateRetreatRequest) (*dto.RetreatResponse, error)
	GetRetreat(ctx context.Context, id string) (*dto.RetreatResponse, error)
	// GetRetreatBySlug serves the storefront read. A non-empty locale
	// overlays stored translations, falling back to the source language.
	GetRetreatBySlug(ctx context.Context, slug, locale string) (*dto.RetreatResponse, error)
	UpdateRetreat(ctx context.Context, id string, req *dto.UpdateRetreatRequest) (*dto.RetreatResponse, error)
	ListRetreats(ctx context.Context, filter *types.RetreatFilter) (*dto.ListRetreatsResponse, error)

	TrashRetreat(ctx context.Context, id string) error
	RestoreRetreat(ctx context.Context, id string) error
}

type retreatService struct {
	ServiceParams
}

func NewRetreatService(params ServiceParams) RetreatService {
	return &retreatService{ServiceParams: params}
}

// slugify turns a title into a URL-safe slug
func slugify(s string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}

func (s *retreatService) CreateRetreat(ctx context.Context, req *dto.CreateRetreatRequest) (*dto.RetreatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToRetreat(ctx)
	if r.Slug == "" {
		r.Slug = slugify(r.Title)
	}

	if err := s.RetreatRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.Logger.Infow("created retreat", "retreat_id", r.ID, "slug", r.Slug)
	return &dto.RetreatResponse{Retreat: r}, nil
}

func (s *retreatService) GetRetreat(ctx context.Context, id string) (*dto.RetreatResponse, error) {
	r, err := s.RetreatRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRooms(ctx, r)
}

func (s *retreatService) GetRetreatBySlug(ctx context.Context, slug, locale string) (*dto.RetreatResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixRetreat, slug)
	if v, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := v.(*dto.RetreatResponse); ok {
			return s.localize(ctx, resp, locale), nil
		}
	}

	r, err := s.RetreatRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp, err := s.withRooms(ctx, r)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return s.localize(ctx, resp, locale), nil
}

// localize overlays stored translations onto a copy of the response. Missing
// translations fall back to the source language without error. The cache
// holds the source response, so the overlay never mutates it.
func (s *retreatService) localize(ctx context.Context, resp *dto.RetreatResponse, locale string) *dto.RetreatResponse {
	if locale == "" {
		return resp
	}

	translations, err := s.TranslationRepo.GetForEntity(ctx, domainTranslation.EntityTypeRetreat, resp.Retreat.ID, locale)
	if err != nil {
		s.Logger.Warnw("failed to load translations", "error", err, "retreat_id", resp.Retreat.ID, "locale", locale)
		return resp
	}
	if len(translations) == 0 {
		return resp
	}

	localized := *resp.Retreat
	for _, t := range translations {
		switch t.Field {
		case "title":
			localized.Title = t.Value
		case "summary":
			localized.Summary = t.Value
		case "description":
			localized.Description = t.Value
		}
	}
	return &dto.RetreatResponse{Retreat: &localized, Rooms: resp.Rooms}
}

func (s *retreatService) withRooms(ctx context.Context, r *retreat.Retreat) (*dto.RetreatResponse, error) {
	rooms, err := s.RoomRepo.ListByRetreat(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RetreatResponse{Retreat: r}
	for _, rm := range rooms {
		held, err := s.RoomRepo.CountHeldBookings(ctx, rm.ID)
		if err != nil {
			return nil, err
		}
		available := rm.Quantity - held
		if available < 0 {
			available = 0
		}
		resp.Rooms = append(resp.Rooms, &dto.RoomResponse{
			Room:      rm,
			Price:     rm.Price(r.BasePrice),
			Available: available,
		})
	}
	return resp, nil
}

func (s *retreatService) UpdateRetreat(ctx context.Context, id string, req *dto.UpdateRetreatRequest) (*dto.RetreatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsTrashed() {
		return nil, ierr.NewError("retreat is in the trash").
			WithHint("Restore the retreat before editing it").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Summary != nil {
		r.Summary = *req.Summary
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.StartDate != nil {
		r.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		r.EndDate = *req.EndDate
	}
	if req.BasePrice != nil {
		r.BasePrice = *req.BasePrice
	}
	if req.Capacity != nil {
		r.Capacity = *req.Capacity
	}
	if req.EarlyBirdPercent != nil {
		r.EarlyBirdPercent = *req.EarlyBirdPercent
	}
	if req.EarlyBirdUntil != nil {
		r.EarlyBirdUntil = req.EarlyBirdUntil
	}
	if req.Published != nil {
		r.Published = *req.Published
	}
	if !r.EndDate.After(r.StartDate) {
		return nil, ierr.NewError("end date must be after start date").
			WithHint("End date must be after start date").
			Mark(ierr.ErrValidation)
	}
	r.Touch(ctx)

	if err := s.RetreatRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixRetreat, r.Slug))
	return s.withRooms(ctx, r)
}

func (s *retreatService) ListRetreats(ctx context.Context, filter *types.RetreatFilter) (*dto.ListRetreatsResponse, error) {
	if filter == nil {
		filter = &types.RetreatFilter{}
	}

	retreats, err := s.RetreatRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.RetreatRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.RetreatResponse, 0, len(retreats))
	for _, r := range retreats {
		resp, err := s.withRooms(ctx, r)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *retreatService) TrashRetreat(ctx context.Context, id string) error {
	r, err := s.RetreatRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.IsTrashed() {
		return ierr.NewError("retreat is already trashed").
			WithHint("The retreat is already in the trash").
			Mark(ierr.ErrInvalidOperation)
	}

	held := 0
	rooms, err := s.RoomRepo.ListByRetreat(ctx, id)
	if err != nil {
		return err
	}
	for _, rm := range rooms {
		n, err := s.RoomRepo.CountHeldBookings(ctx, rm.ID)
		if err != nil {
			return err
		}
		held += n
	}
	if held > 0 {
		return ierr.NewError("retreat has active bookings").
			WithHintf("Cancel the %d active bookings before trashing the retreat", held).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.RetreatRepo.Trash(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixRetreat, r.Slug))
	s.Logger.Infow("trashed retreat", "retreat_id", id)
	return nil
}

func (s *retreatService) RestoreRetreat(ctx context.Context, id string) error {
	r, err := s.RetreatRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !r.IsTrashed() {
		return ierr.NewError("retreat is not trashed").
			WithHint("Only trashed retreats can be restored").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := s.RetreatRepo.Restore(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("restored retreat", "retreat_id", id)
	return nil
}
