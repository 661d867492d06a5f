package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/subscriber"
	"github.com/wildpine/wildpine/internal/email"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type NewsletterServiceSuite struct {
	testutil.BaseServiceTestSuite
	service NewsletterService
}

func TestNewsletterService(t *testing.T) {
	suite.Run(t, new(NewsletterServiceSuite))
}

func (s *NewsletterServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewNewsletterService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		SubscriberRepo: s.GetStores().SubscriberRepo,
		Email:          email.NewService(email.NewClient(s.GetConfig()), s.GetLogger()),
		Cache:          s.GetCache(),
	})
}

func (s *NewsletterServiceSuite) TestSubscribeStartsUnconfirmed() {
	resp, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		Email: "freja@example.com",
		Name:  "Freja",
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Nil(resp.ConfirmedAt)
	s.NotEmpty(resp.Subscriber.Token)
	s.False(resp.Subscriber.IsMailable())
}

func (s *NewsletterServiceSuite) TestSubscribeTwiceReturnsExisting() {
	first, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "freja@example.com"})
	s.NoError(err)

	second, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "FREJA@example.com"})
	s.NoError(err)
	s.Equal(first.Subscriber.ID, second.Subscriber.ID)
}

func (s *NewsletterServiceSuite) TestConfirmIsIdempotent() {
	sub, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "freja@example.com"})
	s.NoError(err)

	confirmed, err := s.service.Confirm(s.GetContext(), sub.Subscriber.Token)
	s.NoError(err)
	s.NotNil(confirmed.ConfirmedAt)
	s.True(confirmed.Subscriber.IsMailable())
	firstConfirm := *confirmed.ConfirmedAt

	confirmed, err = s.service.Confirm(s.GetContext(), sub.Subscriber.Token)
	s.NoError(err)
	s.Equal(firstConfirm, *confirmed.ConfirmedAt)
}

func (s *NewsletterServiceSuite) TestConfirmUnknownToken() {
	_, err := s.service.Confirm(s.GetContext(), "no-such-token")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *NewsletterServiceSuite) TestUnsubscribeIsIdempotent() {
	sub, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "freja@example.com"})
	s.NoError(err)
	_, err = s.service.Confirm(s.GetContext(), sub.Subscriber.Token)
	s.NoError(err)

	s.NoError(s.service.Unsubscribe(s.GetContext(), sub.Subscriber.Token))
	s.NoError(s.service.Unsubscribe(s.GetContext(), sub.Subscriber.Token))

	got, err := s.GetStores().SubscriberRepo.GetByToken(s.GetContext(), sub.Subscriber.Token)
	s.NoError(err)
	s.NotNil(got.UnsubscribedAt)
	s.False(got.IsMailable())
}

func (s *NewsletterServiceSuite) TestResubscribeRestartsOptIn() {
	sub, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "freja@example.com"})
	s.NoError(err)
	_, err = s.service.Confirm(s.GetContext(), sub.Subscriber.Token)
	s.NoError(err)
	s.NoError(s.service.Unsubscribe(s.GetContext(), sub.Subscriber.Token))

	resp, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{Email: "freja@example.com"})
	s.NoError(err)
	s.Nil(resp.UnsubscribedAt)
	// Confirmation does not carry over, the opt-in starts from scratch
	s.Nil(resp.ConfirmedAt)
}

func (s *NewsletterServiceSuite) TestListSubscribersConfirmedOnly() {
	now := time.Now().UTC()
	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), &subscriber.Subscriber{
		ID:          "sub_confirmed",
		Email:       "confirmed@example.com",
		Token:       types.GenerateUUID(),
		ConfirmedAt: &now,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().SubscriberRepo.Create(s.GetContext(), &subscriber.Subscriber{
		ID:        "sub_pending",
		Email:     "pending@example.com",
		Token:     types.GenerateUUID(),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.ListSubscribers(s.GetContext(), &types.SubscriberFilter{ConfirmedOnly: true})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("confirmed@example.com", resp.Items[0].Email)
}

func (s *NewsletterServiceSuite) TestSendCampaignRequiresEmailProvider() {
	_, err := s.service.SendCampaign(s.GetContext(), &dto.SendCampaignRequest{
		Subject: "Summer retreats are open",
		Body:    "Book your spot now.",
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
