package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
)

type PolicyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PolicyService
}

func TestPolicyService(t *testing.T) {
	suite.Run(t, new(PolicyServiceSuite))
}

func (s *PolicyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPolicyService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		PolicyRepo: s.GetStores().PolicyRepo,
		Cache:      s.GetCache(),
	})
}

func (s *PolicyServiceSuite) TestUpsertCreatesVersionOne() {
	resp, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "cancellation-policy",
		Title: "Cancellation Policy",
		Body:  "Full refund up to 30 days before the start.",
	})
	s.NoError(err)
	s.Equal(1, resp.Version)
	s.Equal("cancellation-policy", resp.Slug)
	s.False(resp.EffectiveAt.IsZero())
}

func (s *PolicyServiceSuite) TestUpsertBumpsVersion() {
	_, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "cancellation-policy",
		Title: "Cancellation Policy",
		Body:  "v1",
	})
	s.NoError(err)

	resp, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "cancellation-policy",
		Title: "Cancellation Policy",
		Body:  "v2",
	})
	s.NoError(err)
	s.Equal(2, resp.Version)
	s.Equal("v2", resp.Body)
}

func (s *PolicyServiceSuite) TestUpsertInvalidatesCachedSlug() {
	_, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "house-rules",
		Title: "House Rules",
		Body:  "old body",
	})
	s.NoError(err)

	// Warm the cache
	got, err := s.service.GetPolicyBySlug(s.GetContext(), "house-rules")
	s.NoError(err)
	s.Equal("old body", got.Body)

	_, err = s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "house-rules",
		Title: "House Rules",
		Body:  "new body",
	})
	s.NoError(err)

	got, err = s.service.GetPolicyBySlug(s.GetContext(), "house-rules")
	s.NoError(err)
	s.Equal("new body", got.Body)
	s.Equal(2, got.Version)
}

func (s *PolicyServiceSuite) TestGetUnknownSlug() {
	_, err := s.service.GetPolicyBySlug(s.GetContext(), "missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PolicyServiceSuite) TestListPolicies() {
	for _, slug := range []string{"privacy", "terms"} {
		_, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
			Slug:  slug,
			Title: slug,
			Body:  "body",
		})
		s.NoError(err)
	}

	policies, err := s.service.ListPolicies(s.GetContext())
	s.NoError(err)
	s.Len(policies, 2)
}

func (s *PolicyServiceSuite) TestGetPolicyRendersHTML() {
	_, err := s.service.UpsertPolicy(s.GetContext(), &dto.UpsertPolicyRequest{
		Slug:  "house-rules",
		Title: "House Rules",
		Body:  "Quiet hours start at **22:00**.",
	})
	s.NoError(err)

	resp, err := s.service.GetPolicyBySlug(s.GetContext(), "house-rules")
	s.NoError(err)
	s.Contains(resp.BodyHTML, "<strong>22:00</strong>")
}
