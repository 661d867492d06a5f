package service

import (
	"context"
	"net/url"
	"time"

	"github.com/wildpine/wildpine/internal/api/dto"
	domainSubscriber "github.com/wildpine/wildpine/internal/domain/subscriber"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// NewsletterService handles double-opt-in signups and campaign sends
type NewsletterService interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscriberResponse, error)
	Confirm(ctx context.Context, token string) (*dto.SubscriberResponse, error)
	Unsubscribe(ctx context.Context, token string) error
	ListSubscribers(ctx context.Context, filter *types.SubscriberFilter) (*dto.ListSubscribersResponse, error)
	SendCampaign(ctx context.Context, req *dto.SendCampaignRequest) (*dto.CampaignResponse, error)
}

type newsletterService struct {
	ServiceParams
}

func NewNewsletterService(params ServiceParams) NewsletterService {
	return &newsletterService{ServiceParams: params}
}

func (s *newsletterService) confirmURL(token string) string {
	return s.Config.Server.BaseURL + "/v1/newsletter/confirm?token=" + url.QueryEscape(token)
}

func (s *newsletterService) unsubscribeURL(token string) string {
	return s.Config.Server.BaseURL + "/v1/newsletter/unsubscribe?token=" + url.QueryEscape(token)
}

func (s *newsletterService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscriberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.SubscriberRepo.GetByEmail(ctx, req.Email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		// Resubscribing clears the unsubscribe and restarts opt-in
		if existing.UnsubscribedAt != nil {
			existing.UnsubscribedAt = nil
			existing.ConfirmedAt = nil
			existing.Touch(ctx)
			if err := s.SubscriberRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			if err := s.Email.SendSubscribeConfirmation(ctx, existing.Email, existing.Name, s.confirmURL(existing.Token)); err != nil {
				s.Logger.Errorw("failed to send opt-in email", "error", err, "email", existing.Email)
			}
			return &dto.SubscriberResponse{Subscriber: existing}, nil
		}
		if existing.ConfirmedAt == nil {
			// Pending signup: resend the opt-in link
			if err := s.Email.SendSubscribeConfirmation(ctx, existing.Email, existing.Name, s.confirmURL(existing.Token)); err != nil {
				s.Logger.Errorw("failed to resend opt-in email", "error", err, "email", existing.Email)
			}
		}
		return &dto.SubscriberResponse{Subscriber: existing}, nil
	}

	sub := &domainSubscriber.Subscriber{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIBER),
		Email:     req.Email,
		Name:      req.Name,
		Token:     types.GenerateUUID(),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := s.SubscriberRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.Email.SendSubscribeConfirmation(ctx, sub.Email, sub.Name, s.confirmURL(sub.Token)); err != nil {
		s.Logger.Errorw("failed to send opt-in email", "error", err, "email", sub.Email)
	}

	s.Logger.Infow("new newsletter signup", "subscriber_id", sub.ID)
	return &dto.SubscriberResponse{Subscriber: sub}, nil
}

func (s *newsletterService) Confirm(ctx context.Context, token string) (*dto.SubscriberResponse, error) {
	if token == "" {
		return nil, ierr.NewError("missing token").
			WithHint("The confirmation link is incomplete").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubscriberRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sub.ConfirmedAt == nil {
		now := time.Now().UTC()
		sub.ConfirmedAt = &now
		sub.Touch(ctx)
		if err := s.SubscriberRepo.Update(ctx, sub); err != nil {
			return nil, err
		}
		s.Logger.Infow("subscription confirmed", "subscriber_id", sub.ID)
	}
	return &dto.SubscriberResponse{Subscriber: sub}, nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return ierr.NewError("missing token").
			WithHint("The unsubscribe link is incomplete").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubscriberRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if sub.UnsubscribedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	sub.UnsubscribedAt = &now
	sub.Touch(ctx)
	if err := s.SubscriberRepo.Update(ctx, sub); err != nil {
		return err
	}
	s.Logger.Infow("unsubscribed", "subscriber_id", sub.ID)
	return nil
}

func (s *newsletterService) ListSubscribers(ctx context.Context, filter *types.SubscriberFilter) (*dto.ListSubscribersResponse, error) {
	if filter == nil {
		filter = &types.SubscriberFilter{}
	}

	subs, err := s.SubscriberRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.SubscriberRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubscriberResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, &dto.SubscriberResponse{Subscriber: sub})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *newsletterService) SendCampaign(ctx context.Context, req *dto.SendCampaignRequest) (*dto.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !s.Email.IsEnabled() {
		return nil, ierr.NewError("email is not configured").
			WithHint("Campaigns need a configured email provider").
			Mark(ierr.ErrInvalidOperation)
	}

	html, err := renderMarkdown(req.Body)
	if err != nil {
		return nil, err
	}

	recipients, err := s.SubscriberRepo.ListMailable(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.CampaignResponse{Recipients: len(recipients)}
	for _, sub := range recipients {
		err := s.Email.SendCampaign(ctx, sub.Email, req.Subject, html, req.Body, s.unsubscribeURL(sub.Token))
		if err != nil {
			resp.Failed++
			continue
		}
		resp.Sent++
	}

	s.Logger.Infow("campaign sent",
		"subject", req.Subject,
		"recipients", resp.Recipients,
		"sent", resp.Sent,
		"failed", resp.Failed)
	return resp, nil
}
