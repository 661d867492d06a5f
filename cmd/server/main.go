package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/wildpine/wildpine/internal/api"
	"github.com/wildpine/wildpine/internal/api/cron"
	v1 "github.com/wildpine/wildpine/internal/api/v1"
	"github.com/wildpine/wildpine/internal/cache"
	"github.com/wildpine/wildpine/internal/config"
	"github.com/wildpine/wildpine/internal/email"
	"github.com/wildpine/wildpine/internal/httpclient"
	stripeClient "github.com/wildpine/wildpine/internal/integration/stripe"
	"github.com/wildpine/wildpine/internal/integration/translate"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/repository"
	"github.com/wildpine/wildpine/internal/service"
	"github.com/wildpine/wildpine/internal/types"
	"github.com/wildpine/wildpine/internal/validator"
)

// @title Wildpine API
// @version 1.0
// @description Wildpine retreat booking and content API
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Integrations
			email.NewClient,
			email.NewService,
			stripeClient.NewClient,
			translate.NewClient,

			// Repositories
			repository.NewRetreatRepository,
			repository.NewRoomRepository,
			repository.NewBookingRepository,
			repository.NewPromoCodeRepository,
			repository.NewPaymentRepository,
			repository.NewScheduleRepository,
			repository.NewBlogPostRepository,
			repository.NewSubscriberRepository,
			repository.NewPolicyRepository,
			repository.NewWaitlistRepository,
			repository.NewUserRepository,
			repository.NewTranslationRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewRetreatService,
			service.NewRoomService,
			service.NewDiscountService,
			service.NewPromoCodeService,
			service.NewBookingService,
			service.NewPaymentService,
			service.NewBlogService,
			service.NewNewsletterService,
			service.NewPolicyService,
			service.NewWaitlistService,
			service.NewTranslationService,
			service.NewCronService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	log *logger.Logger,
	authService service.AuthService,
	retreatService service.RetreatService,
	roomService service.RoomService,
	bookingService service.BookingService,
	promoCodeService service.PromoCodeService,
	paymentService service.PaymentService,
	blogService service.BlogService,
	newsletterService service.NewsletterService,
	policyService service.PolicyService,
	waitlistService service.WaitlistService,
	translationService service.TranslationService,
	cronService service.CronService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(log),
		Auth:        v1.NewAuthHandler(authService, log),
		Retreat:     v1.NewRetreatHandler(retreatService, roomService, log),
		Booking:     v1.NewBookingHandler(bookingService, log),
		PromoCode:   v1.NewPromoCodeHandler(promoCodeService, log),
		Payment:     v1.NewPaymentHandler(paymentService, log),
		Blog:        v1.NewBlogHandler(blogService, log),
		Newsletter:  v1.NewNewsletterHandler(newsletterService, log),
		Policy:      v1.NewPolicyHandler(policyService, log),
		Waitlist:    v1.NewWaitlistHandler(waitlistService, log),
		Translation: v1.NewTranslationHandler(translationService, log),

		CronPayment:     cron.NewPaymentCronHandler(log, cronService),
		CronBooking:     cron.NewBookingCronHandler(log, cronService),
		CronMaintenance: cron.NewMaintenanceCronHandler(log, cronService),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger, authService service.AuthService) *gin.Engine {
	return api.NewRouter(handlers, cfg, log, authService)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
