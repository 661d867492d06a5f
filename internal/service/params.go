package service

import (
	"github.com/wildpine/wildpine/internal/cache"
	"github.com/wildpine/wildpine/internal/config"
	"github.com/wildpine/wildpine/internal/domain/blogpost"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/policy"
	"github.com/wildpine/wildpine/internal/domain/promocode"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/room"
	"github.com/wildpine/wildpine/internal/domain/subscriber"
	"github.com/wildpine/wildpine/internal/domain/translation"
	"github.com/wildpine/wildpine/internal/domain/user"
	"github.com/wildpine/wildpine/internal/domain/waitlist"
	"github.com/wildpine/wildpine/internal/email"
	"github.com/wildpine/wildpine/internal/httpclient"
	stripeClient "github.com/wildpine/wildpine/internal/integration/stripe"
	"github.com/wildpine/wildpine/internal/integration/translate"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	RetreatRepo     retreat.Repository
	RoomRepo        room.Repository
	BookingRepo     booking.Repository
	PromoCodeRepo   promocode.Repository
	PaymentRepo     payment.Repository
	ScheduleRepo    payment.ScheduleRepository
	BlogPostRepo    blogpost.Repository
	SubscriberRepo  subscriber.Repository
	PolicyRepo      policy.Repository
	WaitlistRepo    waitlist.Repository
	UserRepo        user.Repository
	TranslationRepo translation.Repository

	// Integrations
	Email     *email.Service
	Stripe    *stripeClient.Client
	Translate *translate.Client

	Cache cache.Cache

	// http client
	Client httpclient.Client
}

// NewServiceParams creates a new ServiceParams with all dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	retreatRepo retreat.Repository,
	roomRepo room.Repository,
	bookingRepo booking.Repository,
	promoCodeRepo promocode.Repository,
	paymentRepo payment.Repository,
	scheduleRepo payment.ScheduleRepository,
	blogPostRepo blogpost.Repository,
	subscriberRepo subscriber.Repository,
	policyRepo policy.Repository,
	waitlistRepo waitlist.Repository,
	userRepo user.Repository,
	translationRepo translation.Repository,
	emailService *email.Service,
	stripe *stripeClient.Client,
	translateClient *translate.Client,
	cacheClient cache.Cache,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		RetreatRepo:     retreatRepo,
		RoomRepo:        roomRepo,
		BookingRepo:     bookingRepo,
		PromoCodeRepo:   promoCodeRepo,
		PaymentRepo:     paymentRepo,
		ScheduleRepo:    scheduleRepo,
		BlogPostRepo:    blogPostRepo,
		SubscriberRepo:  subscriberRepo,
		PolicyRepo:      policyRepo,
		WaitlistRepo:    waitlistRepo,
		UserRepo:        userRepo,
		TranslationRepo: translationRepo,
		Email:           emailService,
		Stripe:          stripe,
		Translate:       translateClient,
		Cache:           cacheClient,
		Client:          client,
	}
}
