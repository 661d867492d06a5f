package email

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/logger"
)

// Service composes and sends the transactional emails of the platform
type Service struct {
	client *Client
	logger *logger.Logger
}

func NewService(client *Client, logger *logger.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// IsEnabled returns whether emails will actually be dispatched
func (s *Service) IsEnabled() bool {
	return s.client.IsEnabled()
}

func (s *Service) send(ctx context.Context, to, subject, text string) error {
	return s.sendHTML(ctx, to, subject, "", text)
}

func (s *Service) sendHTML(ctx context.Context, to, subject, html, text string) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client disabled, skipping send", "to", to, "subject", subject)
		return nil
	}
	messageID, err := s.client.Send(ctx, to, subject, html, text)
	if err != nil {
		s.logger.Errorw("failed to send email", "error", err, "to", to, "subject", subject)
		return err
	}
	s.logger.Infow("email sent", "message_id", messageID, "to", to, "subject", subject)
	return nil
}

// SendBookingConfirmation mails the customer their confirmed booking and
// payment schedule
func (s *Service) SendBookingConfirmation(ctx context.Context, b *booking.Booking, r *retreat.Retreat, schedules []*payment.Schedule) error {
	subject := "Your booking for " + r.Title + " is confirmed"
	return s.send(ctx, b.CustomerEmail, subject, bookingConfirmationText(b, r, schedules))
}

// SendPaymentReminder mails the customer about an upcoming installment
func (s *Service) SendPaymentReminder(ctx context.Context, b *booking.Booking, r *retreat.Retreat, sched *payment.Schedule) error {
	subject := "Payment reminder for " + r.Title
	return s.send(ctx, b.CustomerEmail, subject, paymentReminderText(b, r, sched))
}

// SendPaymentOverdue mails the customer about a missed installment
func (s *Service) SendPaymentOverdue(ctx context.Context, b *booking.Booking, r *retreat.Retreat, sched *payment.Schedule) error {
	subject := "Overdue payment for " + r.Title
	return s.send(ctx, b.CustomerEmail, subject, paymentOverdueText(b, r, sched))
}

// SendWaitlistSpot notifies a waitlisted customer that a spot opened up
func (s *Service) SendWaitlistSpot(ctx context.Context, to, name string, r *retreat.Retreat) error {
	subject := "A spot opened up on " + r.Title
	return s.send(ctx, to, subject, waitlistSpotText(name, r))
}

// SendSubscribeConfirmation mails the double-opt-in link
func (s *Service) SendSubscribeConfirmation(ctx context.Context, to, name, confirmURL string) error {
	return s.send(ctx, to, "Confirm your subscription", subscribeConfirmText(name, confirmURL))
}

// SendCampaign mails one newsletter issue to one subscriber. The HTML body
// comes pre-rendered, the text body carries the raw markdown as fallback.
func (s *Service) SendCampaign(ctx context.Context, to, subject, html, text, unsubscribeURL string) error {
	return s.sendHTML(ctx, to, subject, campaignHTML(html, unsubscribeURL), campaignText(text, unsubscribeURL))
}

// SendFollowUp thanks the customer after their retreat ended
func (s *Service) SendFollowUp(ctx context.Context, b *booking.Booking, r *retreat.Retreat) error {
	subject := "Thank you for joining " + r.Title
	return s.send(ctx, b.CustomerEmail, subject, followUpText(b, r))
}

// SendWeeklySummary mails the operator digest
func (s *Service) SendWeeklySummary(ctx context.Context, to string, weekStart time.Time, bookings, cancellations int, revenue decimal.Decimal, currency string, newSubscribers, waitlistJoins int) error {
	subject := "Weekly summary " + weekStart.Format("2006-01-02")
	text := weeklySummaryText(weekStart, bookings, cancellations, revenue, currency, newSubscribers, waitlistJoins)
	return s.send(ctx, to, subject, text)
}
