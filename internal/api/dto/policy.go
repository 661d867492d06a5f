package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wildpine/wildpine/internal/domain/policy"
	ierr "github.com/wildpine/wildpine/internal/errors"
)

// UpsertPolicyRequest creates or replaces the policy under a slug. Replacing
// bumps the stored version.
type UpsertPolicyRequest struct {
	Slug        string     `json:"slug" binding:"required" example:"cancellation-policy"`
	Title       string     `json:"title" binding:"required"`
	Body        string     `json:"body" binding:"required"`
	EffectiveAt *time.Time `json:"effective_at,omitempty"`
}

// PolicyResponse represents the policy response structure. BodyHTML is the
// markdown body rendered for display.
type PolicyResponse struct {
	*policy.Policy
	BodyHTML string `json:"body_html,omitempty"`
}

func (r *UpsertPolicyRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid policy payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}
