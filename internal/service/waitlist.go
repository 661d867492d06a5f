package service

import (
	"context"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// WaitlistService manages sold-out retreat waitlists
type WaitlistService interface {
	Join(ctx context.Context, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error)
	ListEntries(ctx context.Context, filter *types.WaitlistFilter) (*dto.ListWaitlistResponse, error)
	// MarkConverted records that a notified customer booked the spot
	MarkConverted(ctx context.Context, id string) (*dto.WaitlistEntryResponse, error)
}

type waitlistService struct {
	ServiceParams
}

func NewWaitlistService(params ServiceParams) WaitlistService {
	return &waitlistService{ServiceParams: params}
}

func (s *waitlistService) Join(ctx context.Context, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, req.RetreatID)
	if err != nil {
		return nil, err
	}
	if r.IsTrashed() {
		return nil, ierr.NewError("retreat is not available").
			WithHint("This retreat is not available").
			Mark(ierr.ErrInvalidOperation)
	}
	if req.RoomID != nil {
		rm, err := s.RoomRepo.Get(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if rm.RetreatID != r.ID {
			return nil, ierr.NewError("room does not belong to retreat").
				WithHint("The room is not part of this retreat").
				Mark(ierr.ErrValidation)
		}
	}

	exists, err := s.WaitlistRepo.Exists(ctx, req.RetreatID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ierr.NewError("already on waitlist").
			WithHint("This email is already on the waitlist for this retreat").
			Mark(ierr.ErrAlreadyExists)
	}

	entry := req.ToEntry(ctx)
	if err := s.WaitlistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.Logger.Infow("joined waitlist", "entry_id", entry.ID, "retreat_id", entry.RetreatID)
	return &dto.WaitlistEntryResponse{Entry: entry}, nil
}

func (s *waitlistService) ListEntries(ctx context.Context, filter *types.WaitlistFilter) (*dto.ListWaitlistResponse, error) {
	if filter == nil {
		filter = &types.WaitlistFilter{}
	}

	entries, err := s.WaitlistRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.WaitlistRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, &dto.WaitlistEntryResponse{Entry: e})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *waitlistService) MarkConverted(ctx context.Context, id string) (*dto.WaitlistEntryResponse, error) {
	entry, err := s.WaitlistRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.WaitlistStatus != types.WaitlistStatusNotified {
		return nil, ierr.NewError("entry was not notified").
			WithHintf("A %s entry cannot be converted", entry.WaitlistStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	entry.WaitlistStatus = types.WaitlistStatusConverted
	entry.Touch(ctx)
	if err := s.WaitlistRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.WaitlistEntryResponse{Entry: entry}, nil
}
