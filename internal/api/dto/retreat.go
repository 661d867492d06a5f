package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// CreateRetreatRequest represents the request payload for creating a retreat
type CreateRetreatRequest struct {
	Title            string           `json:"title" binding:"required" example:"Autumn Forest Yoga Retreat"`
	Slug             string           `json:"slug" binding:"omitempty" example:"autumn-forest-yoga"`
	Summary          string           `json:"summary"`
	Description      string           `json:"description"`
	Location         string           `json:"location" binding:"required" example:"Black Forest, Germany"`
	StartDate        time.Time        `json:"start_date" binding:"required"`
	EndDate          time.Time        `json:"end_date" binding:"required"`
	BasePrice        decimal.Decimal  `json:"base_price" binding:"required"`
	Currency         string           `json:"currency" binding:"required,len=3" example:"EUR"`
	Capacity         int              `json:"capacity" binding:"required,min=1"`
	EarlyBirdPercent *decimal.Decimal `json:"early_bird_percent,omitempty"`
	EarlyBirdUntil   *time.Time       `json:"early_bird_until,omitempty"`
}

// UpdateRetreatRequest represents the request payload for updating a retreat
type UpdateRetreatRequest struct {
	Title            *string          `json:"title,omitempty"`
	Summary          *string          `json:"summary,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Location         *string          `json:"location,omitempty"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	BasePrice        *decimal.Decimal `json:"base_price,omitempty"`
	Capacity         *int             `json:"capacity,omitempty"`
	EarlyBirdPercent *decimal.Decimal `json:"early_bird_percent,omitempty"`
	EarlyBirdUntil   *time.Time       `json:"early_bird_until,omitempty"`
	Published        *bool            `json:"published,omitempty"`
}

// RetreatResponse represents the retreat response structure
type RetreatResponse struct {
	*retreat.Retreat
	Rooms []*RoomResponse `json:"rooms,omitempty"`
}

// CreateRoomRequest represents the request payload for adding a room type
type CreateRoomRequest struct {
	Name       string          `json:"name" binding:"required" example:"Double Cabin"`
	Occupancy  int             `json:"occupancy" binding:"required,min=1"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
}

// UpdateRoomRequest represents the request payload for updating a room type
type UpdateRoomRequest struct {
	Name       *string          `json:"name,omitempty"`
	Occupancy  *int             `json:"occupancy,omitempty"`
	PriceDelta *decimal.Decimal `json:"price_delta,omitempty"`
	Quantity   *int             `json:"quantity,omitempty"`
}

// RoomResponse represents a room type with live availability
type RoomResponse struct {
	*room.Room
	Price     decimal.Decimal `json:"price"`
	Available int             `json:"available"`
}

func (r *CreateRetreatRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid retreat payload").
			Mark(ierr.ErrValidation)
	}
	if !r.EndDate.After(r.StartDate) {
		return ierr.NewError("end date must be after start date").
			WithHint("End date must be after start date").
			Mark(ierr.ErrValidation)
	}
	if r.BasePrice.LessThan(decimal.Zero) {
		return ierr.NewError("base price must not be negative").
			WithHint("Base price must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.EarlyBirdPercent != nil {
		if r.EarlyBirdPercent.LessThan(decimal.Zero) || r.EarlyBirdPercent.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("early bird percent out of range").
				WithHint("Early bird percent must be between 0 and 100").
				Mark(ierr.ErrValidation)
		}
		if r.EarlyBirdUntil == nil {
			return ierr.NewError("early bird deadline missing").
				WithHint("Early bird percent requires an early bird deadline").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (r *UpdateRetreatRequest) Validate() error {
	if r.StartDate != nil && r.EndDate != nil && !r.EndDate.After(*r.StartDate) {
		return ierr.NewError("end date must be after start date").
			WithHint("End date must be after start date").
			Mark(ierr.ErrValidation)
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		return ierr.NewError("capacity must be positive").
			WithHint("Capacity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateRoomRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid room payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateRoomRequest) Validate() error {
	if r.Occupancy != nil && *r.Occupancy < 1 {
		return ierr.NewError("occupancy must be positive").
			WithHint("Occupancy must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if r.Quantity != nil && *r.Quantity < 1 {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToRetreat converts the create request to a domain retreat
func (r *CreateRetreatRequest) ToRetreat(ctx context.Context) *retreat.Retreat {
	m := &retreat.Retreat{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RETREAT),
		Title:       r.Title,
		Slug:        r.Slug,
		Summary:     r.Summary,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		BasePrice:   r.BasePrice,
		Currency:    r.Currency,
		Capacity:    r.Capacity,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if r.EarlyBirdPercent != nil {
		m.EarlyBirdPercent = *r.EarlyBirdPercent
		m.EarlyBirdUntil = r.EarlyBirdUntil
	}
	return m
}

// ListRetreatsResponse represents a paginated list of retreats
type ListRetreatsResponse = types.ListResponse[*RetreatResponse]
