package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// Claims carries the identity extracted from a validated admin token
type Claims struct {
	UserID string
	Email  string
}

// AuthService authenticates admin users and issues JWTs
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func (s *authService) tokenTTL() time.Duration {
	hours := s.Config.Auth.TokenTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("Email or password is incorrect").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}
	if !u.CheckPassword(req.Password) {
		return nil, ierr.NewError("invalid credentials").
			WithHint("Email or password is incorrect").
			Mark(ierr.ErrPermissionDenied)
	}

	token, err := s.generateToken(u.ID, u.Email)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrInternal)
	}

	s.Logger.Infow("admin logged in", "user_id", u.ID)
	return &dto.AuthResponse{Token: token, UserID: u.ID, Email: u.Email}, nil
}

func (s *authService) generateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(s.tokenTTL()).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Config.Auth.Secret))
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.Config.Auth.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: userID, Email: email}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if userID == "" || userID == types.DefaultUserID {
		return ierr.NewError("not authenticated").
			WithHint("Log in before changing the password").
			Mark(ierr.ErrPermissionDenied)
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !u.CheckPassword(req.CurrentPassword) {
		return ierr.NewError("wrong current password").
			WithHint("The current password is incorrect").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := u.SetPassword(req.NewPassword); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrInternal)
	}
	u.Touch(ctx)
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return err
	}

	s.Logger.Infow("password changed", "user_id", u.ID)
	return nil
}
