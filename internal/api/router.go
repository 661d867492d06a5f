package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/api/cron"
	v1 "github.com/wildpine/wildpine/internal/api/v1"
	"github.com/wildpine/wildpine/internal/config"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/rest/middleware"
	"github.com/wildpine/wildpine/internal/service"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Auth        *v1.AuthHandler
	Retreat     *v1.RetreatHandler
	Booking     *v1.BookingHandler
	PromoCode   *v1.PromoCodeHandler
	Payment     *v1.PaymentHandler
	Blog        *v1.BlogHandler
	Newsletter  *v1.NewsletterHandler
	Policy      *v1.PolicyHandler
	Waitlist    *v1.WaitlistHandler
	Translation *v1.TranslationHandler

	CronPayment     *cron.PaymentCronHandler
	CronBooking     *cron.BookingCronHandler
	CronMaintenance *cron.MaintenanceCronHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger, authService service.AuthService) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	// Webhooks skip authentication, the provider signature is the auth
	v1Group.POST("/webhooks/stripe", handlers.Payment.HandleStripeWebhook)

	registerPublicRoutes(v1Group, handlers)

	admin := v1Group.Group("", middleware.AuthenticateMiddleware(cfg, authService, log))
	registerAdminRoutes(admin, handlers)

	cronGroup := v1Group.Group("/cron", middleware.CronAuthMiddleware(cfg, log))
	registerCronRoutes(cronGroup, handlers)

	return router
}

func registerPublicRoutes(router *gin.RouterGroup, handlers Handlers) {
	router.POST("/auth/login", handlers.Auth.Login)

	// Storefront reads
	router.GET("/retreats", handlers.Retreat.ListRetreats)
	router.GET("/retreats/slug/:slug", handlers.Retreat.GetRetreatBySlug)
	router.GET("/retreats/:id/rooms", handlers.Retreat.ListRooms)
	router.GET("/rooms/:id", handlers.Retreat.GetRoom)
	router.GET("/blog", handlers.Blog.ListPosts)
	router.GET("/blog/slug/:slug", handlers.Blog.GetPostBySlug)
	router.GET("/policies", handlers.Policy.ListPolicies)
	router.GET("/policies/:slug", handlers.Policy.GetPolicyBySlug)
	router.GET("/translations/:entity_type/:entity_id", handlers.Translation.GetTranslations)

	// Customer actions
	router.POST("/bookings/quote", handlers.Booking.Quote)
	router.POST("/bookings", handlers.Booking.CreateBooking)
	router.POST("/payments/checkout", handlers.Payment.CreateCheckout)
	router.POST("/waitlist", handlers.Waitlist.Join)
	router.POST("/newsletter/subscribe", handlers.Newsletter.Subscribe)
	router.GET("/newsletter/confirm", handlers.Newsletter.Confirm)
	router.GET("/newsletter/unsubscribe", handlers.Newsletter.Unsubscribe)
}

func registerAdminRoutes(router *gin.RouterGroup, handlers Handlers) {
	router.POST("/auth/password", handlers.Auth.ChangePassword)

	retreats := router.Group("/retreats")
	{
		retreats.POST("", handlers.Retreat.CreateRetreat)
		retreats.GET("/:id", handlers.Retreat.GetRetreat)
		retreats.PUT("/:id", handlers.Retreat.UpdateRetreat)
		retreats.DELETE("/:id", handlers.Retreat.TrashRetreat)
		retreats.POST("/:id/restore", handlers.Retreat.RestoreRetreat)
		retreats.POST("/:id/rooms", handlers.Retreat.CreateRoom)
	}

	rooms := router.Group("/rooms")
	{
		rooms.PUT("/:id", handlers.Retreat.UpdateRoom)
		rooms.DELETE("/:id", handlers.Retreat.DeleteRoom)
	}

	bookings := router.Group("/bookings")
	{
		bookings.GET("", handlers.Booking.ListBookings)
		bookings.GET("/:id", handlers.Booking.GetBooking)
		bookings.POST("/:id/cancel", handlers.Booking.CancelBooking)
		bookings.POST("/:id/assign-room", handlers.Booking.AssignRoom)
	}

	promoCodes := router.Group("/promo-codes")
	{
		promoCodes.POST("", handlers.PromoCode.CreatePromoCode)
		promoCodes.GET("", handlers.PromoCode.ListPromoCodes)
		promoCodes.GET("/:id", handlers.PromoCode.GetPromoCode)
		promoCodes.PUT("/:id", handlers.PromoCode.UpdatePromoCode)
		promoCodes.DELETE("/:id", handlers.PromoCode.DeletePromoCode)
	}

	payments := router.Group("/payments")
	{
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.POST("/record", handlers.Payment.RecordOfflinePayment)
		payments.POST("/:id/refund", handlers.Payment.RefundPayment)
	}

	blog := router.Group("/blog")
	{
		blog.POST("", handlers.Blog.CreatePost)
		blog.GET("/:id", handlers.Blog.GetPost)
		blog.PUT("/:id", handlers.Blog.UpdatePost)
		blog.DELETE("/:id", handlers.Blog.TrashPost)
		blog.POST("/:id/restore", handlers.Blog.RestorePost)
	}

	newsletter := router.Group("/newsletter")
	{
		newsletter.GET("/subscribers", handlers.Newsletter.ListSubscribers)
		newsletter.POST("/campaigns", handlers.Newsletter.SendCampaign)
	}

	router.PUT("/policies", handlers.Policy.UpsertPolicy)

	waitlist := router.Group("/waitlist")
	{
		waitlist.GET("", handlers.Waitlist.ListEntries)
		waitlist.POST("/:id/convert", handlers.Waitlist.MarkConverted)
	}

	router.POST("/translations", handlers.Translation.TranslateEntity)
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	payments := router.Group("/payments")
	{
		payments.POST("/reminders", handlers.CronPayment.SendReminders)
		payments.POST("/overdue", handlers.CronPayment.MarkOverdue)
	}

	bookings := router.Group("/bookings")
	{
		bookings.POST("/complete", handlers.CronBooking.Complete)
	}

	maintenance := router.Group("/maintenance")
	{
		maintenance.POST("/purge-trash", handlers.CronMaintenance.PurgeTrash)
		maintenance.POST("/weekly-summary", handlers.CronMaintenance.WeeklySummary)
	}
}
