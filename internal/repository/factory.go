package repository

import (
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
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	postgresRepo "github.com/wildpine/wildpine/internal/repository/postgres"
)

func NewRetreatRepository(db *postgres.DB, logger *logger.Logger) retreat.Repository {
	return postgresRepo.NewRetreatRepository(db, logger)
}

func NewRoomRepository(db *postgres.DB, logger *logger.Logger) room.Repository {
	return postgresRepo.NewRoomRepository(db, logger)
}

func NewBookingRepository(db *postgres.DB, logger *logger.Logger) booking.Repository {
	return postgresRepo.NewBookingRepository(db, logger)
}

func NewPromoCodeRepository(db *postgres.DB, logger *logger.Logger) promocode.Repository {
	return postgresRepo.NewPromoCodeRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewScheduleRepository(db *postgres.DB, logger *logger.Logger) payment.ScheduleRepository {
	return postgresRepo.NewScheduleRepository(db, logger)
}

func NewBlogPostRepository(db *postgres.DB, logger *logger.Logger) blogpost.Repository {
	return postgresRepo.NewBlogPostRepository(db, logger)
}

func NewSubscriberRepository(db *postgres.DB, logger *logger.Logger) subscriber.Repository {
	return postgresRepo.NewSubscriberRepository(db, logger)
}

func NewPolicyRepository(db *postgres.DB, logger *logger.Logger) policy.Repository {
	return postgresRepo.NewPolicyRepository(db, logger)
}

func NewWaitlistRepository(db *postgres.DB, logger *logger.Logger) waitlist.Repository {
	return postgresRepo.NewWaitlistRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewTranslationRepository(db *postgres.DB, logger *logger.Logger) translation.Repository {
	return postgresRepo.NewTranslationRepository(db, logger)
}
