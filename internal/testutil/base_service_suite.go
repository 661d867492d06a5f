package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

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
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Server.BaseURL = "http://test.local"
	cfg.Auth.Secret = "test-secret-for-unit-tests-only"
	cfg.Auth.TokenTTLHours = 1

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = types.SetUserID(s.ctx, types.DefaultUserID)
	s.ctx = types.SetRequestID(s.ctx, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	retreats := NewInMemoryRetreatStore()
	bookings := NewInMemoryBookingStore(retreats)

	s.stores = Stores{
		RetreatRepo:     retreats,
		RoomRepo:        NewInMemoryRoomStore(bookings),
		BookingRepo:     bookings,
		PromoCodeRepo:   NewInMemoryPromoCodeStore(),
		PaymentRepo:     NewInMemoryPaymentStore(),
		ScheduleRepo:    NewInMemoryScheduleStore(),
		BlogPostRepo:    NewInMemoryBlogPostStore(),
		SubscriberRepo:  NewInMemorySubscriberStore(),
		PolicyRepo:      NewInMemoryPolicyStore(),
		WaitlistRepo:    NewInMemoryWaitlistStore(),
		UserRepo:        NewInMemoryUserStore(),
		TranslationRepo: NewInMemoryTranslationStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.RetreatRepo.(*InMemoryRetreatStore).Clear()
	s.stores.RoomRepo.(*InMemoryRoomStore).Clear()
	s.stores.BookingRepo.(*InMemoryBookingStore).Clear()
	s.stores.PromoCodeRepo.(*InMemoryPromoCodeStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.ScheduleRepo.(*InMemoryScheduleStore).Clear()
	s.stores.BlogPostRepo.(*InMemoryBlogPostStore).Clear()
	s.stores.SubscriberRepo.(*InMemorySubscriberStore).Clear()
	s.stores.PolicyRepo.(*InMemoryPolicyStore).Clear()
	s.stores.WaitlistRepo.(*InMemoryWaitlistStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.TranslationRepo.(*InMemoryTranslationStore).Clear()
}

// ClearStores wipes all stores mid-test
func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetDB returns the mock database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetStores returns the in-memory repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNow returns the timestamp captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
