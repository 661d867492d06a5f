package dto

import (
	"github.com/go-playground/validator/v10"

	ierr "github.com/wildpine/wildpine/internal/errors"
)

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"email"`
	Password string `json:"password" binding:"required" validate:"min=8"`
}

// AuthResponse carries the signed token for subsequent requests
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ChangePasswordRequest represents a password change for the logged-in admin
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8" validate:"min=8"`
}

func (r *LoginRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid login payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *ChangePasswordRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid password payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}
