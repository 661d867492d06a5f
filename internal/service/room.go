package service

import (
	"context"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/cache"
	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// RoomService manages room types within a retreat
type RoomService interface {
	CreateRoom(ctx context.Context, retreatID string, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context, retreatID string) ([]*dto.RoomResponse, error)

	// Available returns how many units of the room are free right now
	Available(ctx context.Context, roomID string) (int, error)
}

type roomService struct {
	ServiceParams
}

func NewRoomService(params ServiceParams) RoomService {
	return &roomService{ServiceParams: params}
}

func (s *roomService) CreateRoom(ctx context.Context, retreatID string, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, retreatID)
	if err != nil {
		return nil, err
	}
	if r.IsTrashed() {
		return nil, ierr.NewError("retreat is in the trash").
			WithHint("Restore the retreat before adding rooms").
			Mark(ierr.ErrInvalidOperation)
	}

	rm := &room.Room{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ROOM),
		RetreatID:  retreatID,
		Name:       req.Name,
		Occupancy:  req.Occupancy,
		PriceDelta: req.PriceDelta,
		Quantity:   req.Quantity,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if err := s.RoomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixRetreat, r.Slug))
	return &dto.RoomResponse{Room: rm, Price: rm.Price(r.BasePrice), Available: rm.Quantity}, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	rm, err := s.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.RetreatRepo.Get(ctx, rm.RetreatID)
	if err != nil {
		return nil, err
	}
	available, err := s.Available(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RoomResponse{Room: rm, Price: rm.Price(r.BasePrice), Available: available}, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rm, err := s.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rm.Name = *req.Name
	}
	if req.Occupancy != nil {
		rm.Occupancy = *req.Occupancy
	}
	if req.PriceDelta != nil {
		rm.PriceDelta = *req.PriceDelta
	}
	if req.Quantity != nil {
		held, err := s.RoomRepo.CountHeldBookings(ctx, id)
		if err != nil {
			return nil, err
		}
		if *req.Quantity < held {
			return nil, ierr.NewError("quantity below active bookings").
				WithHintf("Cannot reduce quantity below the %d active bookings", held).
				Mark(ierr.ErrInvalidOperation)
		}
		rm.Quantity = *req.Quantity
	}
	rm.Touch(ctx)

	if err := s.RoomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}

	r, err := s.RetreatRepo.Get(ctx, rm.RetreatID)
	if err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixRetreat, r.Slug))

	available, err := s.Available(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RoomResponse{Room: rm, Price: rm.Price(r.BasePrice), Available: available}, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id string) error {
	held, err := s.RoomRepo.CountHeldBookings(ctx, id)
	if err != nil {
		return err
	}
	if held > 0 {
		return ierr.NewError("room has active bookings").
			WithHintf("Cancel the %d active bookings before deleting the room", held).
			Mark(ierr.ErrInvalidOperation)
	}
	return s.RoomRepo.Delete(ctx, id)
}

func (s *roomService) ListRooms(ctx context.Context, retreatID string) ([]*dto.RoomResponse, error) {
	r, err := s.RetreatRepo.Get(ctx, retreatID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.RoomRepo.ListByRetreat(ctx, retreatID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RoomResponse, 0, len(rooms))
	for _, rm := range rooms {
		available, err := s.Available(ctx, rm.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.RoomResponse{Room: rm, Price: rm.Price(r.BasePrice), Available: available})
	}
	return out, nil
}

func (s *roomService) Available(ctx context.Context, roomID string) (int, error) {
	rm, err := s.RoomRepo.Get(ctx, roomID)
	if err != nil {
		return 0, err
	}
	held, err := s.RoomRepo.CountHeldBookings(ctx, roomID)
	if err != nil {
		return 0, err
	}
	available := rm.Quantity - held
	if available < 0 {
		available = 0
	}
	return available, nil
}
