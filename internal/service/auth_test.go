package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/user"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AuthService
	testData struct {
		user *user.User
	}
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		DB:       s.GetDB(),
		UserRepo: s.GetStores().UserRepo,
		Cache:    s.GetCache(),
	})

	s.testData.user = &user.User{
		ID:        "user_test_auth",
		Email:     "admin@wildpine.example",
		Name:      "Admin",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.testData.user.SetPassword("correct-horse-battery"))
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.testData.user))
}

func (s *AuthServiceSuite) TestLogin() {
	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@wildpine.example",
		Password: "correct-horse-battery",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(s.testData.user.ID, resp.UserID)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@wildpine.example",
		Password: "wrong-password",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "nobody@wildpine.example",
		Password: "whatever-password",
	})
	s.Error(err)
	// Unknown accounts look the same as wrong passwords
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestValidateTokenRoundtrip() {
	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@wildpine.example",
		Password: "correct-horse-battery",
	})
	s.NoError(err)

	claims, err := s.service.ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(s.testData.user.ID, claims.UserID)
	s.Equal(s.testData.user.Email, claims.Email)
}

func (s *AuthServiceSuite) TestValidateGarbageToken() {
	_, err := s.service.ValidateToken(s.GetContext(), "not.a.jwt")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestChangePassword() {
	err := s.service.ChangePassword(s.GetContext(), s.testData.user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "even-better-secret",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@wildpine.example",
		Password: "correct-horse-battery",
	})
	s.Error(err)

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@wildpine.example",
		Password: "even-better-secret",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestChangePasswordWrongCurrent() {
	err := s.service.ChangePassword(s.GetContext(), s.testData.user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "even-better-secret",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestChangePasswordRequiresRealUser() {
	err := s.service.ChangePassword(s.GetContext(), types.DefaultUserID, &dto.ChangePasswordRequest{
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "even-better-secret",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
