package stripe

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/wildpine/wildpine/internal/config"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
)

// Client wraps the Stripe API for hosted checkout and refunds
type Client struct {
	client        *stripe.Client
	webhookSecret string
	logger        *logger.Logger
}

// NewClient creates a new Stripe client. With no secret key configured the
// client is nil and payment operations fail with a clear error.
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	c := &Client{
		webhookSecret: cfg.Stripe.WebhookSecret,
		logger:        logger,
	}
	if cfg.Stripe.SecretKey != "" {
		c.client = stripe.NewClient(cfg.Stripe.SecretKey, nil)
	}
	return c
}

// IsEnabled returns whether a Stripe secret key is configured
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

func (c *Client) requireClient() error {
	if c.client == nil {
		return ierr.NewError("stripe is not configured").
			WithHint("Online payments are not configured").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// CheckoutSessionRequest describes one hosted payment page
type CheckoutSessionRequest struct {
	PaymentID     string
	BookingID     string
	ScheduleID    string
	Description   string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the created hosted payment page
type CheckoutSession struct {
	ID  string
	URL string
}

// CreateCheckoutSession creates a one-time payment checkout session. The
// payment and booking IDs travel in the session metadata so the webhook can
// resolve them back.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error) {
	if err := c.requireClient(); err != nil {
		return nil, err
	}

	amountCents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	metadata := map[string]string{
		"payment_id": req.PaymentID,
		"booking_id": req.BookingID,
	}
	if req.ScheduleID != "" {
		metadata["schedule_id"] = req.ScheduleID
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:          stripe.String("payment"),
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		Metadata:      metadata,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			Metadata: metadata,
		},
	}

	session, err := c.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		c.logger.Errorw("failed to create checkout session",
			"error", err,
			"booking_id", req.BookingID)
		return nil, ierr.WithError(err).
			WithHint("Unable to create the payment page").
			WithReportableDetails(map[string]interface{}{
				"booking_id": req.BookingID,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// VerifyWebhook checks the signature and parses the event payload
func (c *Client) VerifyWebhook(payload []byte, signature string) (*stripe.Event, error) {
	if c.webhookSecret == "" {
		return nil, ierr.NewError("webhook secret is not configured").
			WithHint("Stripe webhooks are not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrPermissionDenied)
	}
	return &event, nil
}

// RefundSession refunds the payment behind a completed checkout session
func (c *Client) RefundSession(ctx context.Context, sessionID string) error {
	if err := c.requireClient(); err != nil {
		return err
	}

	session, err := c.client.V1CheckoutSessions.Retrieve(ctx, sessionID, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Unable to load the payment session").
			Mark(ierr.ErrHTTPClient)
	}
	if session.PaymentIntent == nil {
		return ierr.NewError("session has no payment intent").
			WithHint("This payment cannot be refunded").
			Mark(ierr.ErrInvalidOperation)
	}

	_, err = c.client.V1Refunds.Create(ctx, &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(session.PaymentIntent.ID),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Refund failed").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}
