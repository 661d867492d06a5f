package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/wildpine/wildpine/internal/domain/subscriber"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// SubscribeRequest represents a public newsletter signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
}

// ConfirmSubscriptionRequest carries the double-opt-in token
type ConfirmSubscriptionRequest struct {
	Token string `json:"token" form:"token" binding:"required"`
}

// UnsubscribeRequest carries the unsubscribe token
type UnsubscribeRequest struct {
	Token string `json:"token" form:"token" binding:"required"`
}

// SendCampaignRequest represents an admin-triggered mail to all confirmed
// subscribers
type SendCampaignRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// CampaignResponse reports how the campaign send went
type CampaignResponse struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// SubscriberResponse represents the subscriber response structure
type SubscriberResponse struct {
	*subscriber.Subscriber
}

func (r *SubscribeRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid signup payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *SendCampaignRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid campaign payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListSubscribersResponse represents a paginated list of subscribers
type ListSubscribersResponse = types.ListResponse[*SubscriberResponse]
