package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/wildpine/wildpine/internal/types"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Postgres    PostgresConfig    `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	Auth        AuthConfig        `validate:"required"`
	Stripe      StripeConfig      `validate:"required"`
	Email       EmailConfig       `validate:"required"`
	Translation TranslationConfig `validate:"required"`
	Cron        CronConfig        `validate:"required"`
	Booking     BookingConfig     `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// BaseURL is the externally reachable URL, used to build checkout
	// success/cancel and unsubscribe links.
	BaseURL string `validate:"required,url"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type AuthConfig struct {
	// Secret signs admin JWTs
	Secret string `validate:"required"`
	// TokenTTLHours is how long an issued admin token stays valid
	TokenTTLHours int
	// APIKey allows server-to-server calls without a JWT
	APIKey       string
	APIKeyHeader string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// SuccessPath and CancelPath are appended to Server.BaseURL
	SuccessPath string
	CancelPath  string
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
	AdminEmail  string
}

type TranslationConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
}

type CronConfig struct {
	// Secret authenticates the external scheduler hitting /v1/cron routes
	Secret string `validate:"required"`
	// ReminderDays is how many days before a due date a reminder goes out
	ReminderDays int
	// TrashRetentionDays is how long trashed content survives before purge
	TrashRetentionDays int
}

type BookingConfig struct {
	// DepositPercent of the discounted total, due at booking time
	DepositPercent int `validate:"required,min=1,max=100"`
	// BalanceDueDays before the retreat start date
	BalanceDueDays int
	// DuplicateWindowHours guards against double-submits of the same
	// email + retreat pair
	DuplicateWindowHours int
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wildpine")

	v.SetEnvPrefix("WILDPINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.baseurl", "http://localhost:8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("auth.tokenttlhours", 24)
	v.SetDefault("auth.apikeyheader", "x-api-key")
	v.SetDefault("stripe.successpath", "/booking/success")
	v.SetDefault("stripe.cancelpath", "/booking/cancelled")
	v.SetDefault("cron.reminderdays", 7)
	v.SetDefault("cron.trashretentiondays", 30)
	v.SetDefault("booking.depositpercent", 25)
	v.SetDefault("booking.balanceduedays", 30)
	v.SetDefault("booking.duplicatewindowhours", 24)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or tests outside the server process
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Server: ServerConfig{
			Address: ":8080",
			BaseURL: "http://localhost:8080",
		},
		Cron: CronConfig{
			Secret:             "local-cron-secret",
			ReminderDays:       7,
			TrashRetentionDays: 30,
		},
		Booking: BookingConfig{
			DepositPercent:       25,
			BalanceDueDays:       30,
			DuplicateWindowHours: 24,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
