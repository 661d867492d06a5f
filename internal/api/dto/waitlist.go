package dto

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/wildpine/wildpine/internal/domain/waitlist"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// JoinWaitlistRequest represents a public request to join a retreat waitlist
type JoinWaitlistRequest struct {
	RetreatID string  `json:"retreat_id" binding:"required"`
	RoomID    *string `json:"room_id,omitempty"`
	Email     string  `json:"email" binding:"required,email"`
	Name      string  `json:"name,omitempty"`
}

// WaitlistEntryResponse represents the waitlist entry response structure
type WaitlistEntryResponse struct {
	*waitlist.Entry
}

func (r *JoinWaitlistRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid waitlist payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToEntry converts the join request to a domain waitlist entry
func (r *JoinWaitlistRequest) ToEntry(ctx context.Context) *waitlist.Entry {
	return &waitlist.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WAITLIST),
		RetreatID:      r.RetreatID,
		RoomID:         r.RoomID,
		Email:          r.Email,
		Name:           r.Name,
		WaitlistStatus: types.WaitlistStatusWaiting,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// ListWaitlistResponse represents a paginated list of waitlist entries
type ListWaitlistResponse = types.ListResponse[*WaitlistEntryResponse]
