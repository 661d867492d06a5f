package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/payment"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

const paymentColumns = `
	id, booking_id, schedule_id, amount, currency, provider,
	provider_session_id, payment_status,
	status, created_at, updated_at, created_by, updated_by
`

func (r *paymentRepository) Create(ctx context.Context, m *payment.Payment) error {
	query := `
	INSERT INTO payments (` + paymentColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.BookingID, m.ScheduleID, m.Amount, m.Currency, m.Provider,
		m.ProviderSessionID, m.PaymentStatus,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A payment for this checkout session already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var m payment.Payment
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *paymentRepository) GetByProviderSessionID(ctx context.Context, sessionID string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_session_id = $1`

	var m payment.Payment
	err := r.db.GetContext(ctx, &m, query, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHint("No payment recorded for this checkout session").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *paymentRepository) Update(ctx context.Context, m *payment.Payment) error {
	query := `
	UPDATE payments SET
		payment_status = $2, updated_at = $3, updated_by = $4
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.PaymentStatus, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update payment").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "payment")
}

func paymentWhere(filter *types.PaymentFilter) (string, []interface{}) {
	args := []interface{}{}
	where := `WHERE 1=1`
	if filter.BookingID != "" {
		args = append(args, filter.BookingID)
		where += fmt.Sprintf(` AND booking_id = $%d`, len(args))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		where += fmt.Sprintf(` AND payment_status = $%d`, len(args))
	}
	return where, args
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	where, args := paymentWhere(filter)

	query := `SELECT ` + paymentColumns + ` FROM payments ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "created_at"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var payments []*payment.Payment
	err := r.db.SelectContext(ctx, &payments, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	where, args := paymentWhere(filter)
	query := `SELECT COUNT(*) FROM payments ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count payments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID string) ([]*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + `
	FROM payments
	WHERE booking_id = $1
	ORDER BY created_at ASC`

	var payments []*payment.Payment
	err := r.db.SelectContext(ctx, &payments, query, bookingID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list booking payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

type scheduleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewScheduleRepository(db *postgres.DB, logger *logger.Logger) payment.ScheduleRepository {
	return &scheduleRepository{db: db, logger: logger}
}

const scheduleColumns = `
	id, booking_id, kind, amount, due_date, schedule_status, reminded_at,
	status, created_at, updated_at, created_by, updated_by
`

func (r *scheduleRepository) Create(ctx context.Context, m *payment.Schedule) error {
	query := `
	INSERT INTO payment_schedules (` + scheduleColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.BookingID, m.Kind, m.Amount, m.DueDate,
		m.ScheduleStatus, m.RemindedAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create payment schedule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*payment.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules WHERE id = $1`

	var m payment.Schedule
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment schedule not found").
				WithHintf("Payment schedule %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment schedule").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *scheduleRepository) Update(ctx context.Context, m *payment.Schedule) error {
	query := `
	UPDATE payment_schedules SET
		schedule_status = $2, reminded_at = $3, amount = $4, due_date = $5,
		updated_at = $6, updated_by = $7
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.ScheduleStatus, m.RemindedAt, m.Amount, m.DueDate,
		m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update payment schedule").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "payment schedule")
}

func (r *scheduleRepository) ListByBooking(ctx context.Context, bookingID string) ([]*payment.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
	FROM payment_schedules
	WHERE booking_id = $1
	ORDER BY due_date ASC`

	var schedules []*payment.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, bookingID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payment schedules").
			Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}

func (r *scheduleRepository) ListOpenDueBefore(ctx context.Context, cutoff time.Time) ([]*payment.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
	FROM payment_schedules
	WHERE schedule_status IN ($1, $2) AND due_date <= $3
	ORDER BY due_date ASC`

	var schedules []*payment.Schedule
	err := r.db.SelectContext(ctx, &schedules, query,
		types.ScheduleStatusScheduled, types.ScheduleStatusReminded, cutoff)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list due payment schedules").
			Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}

func (r *scheduleRepository) ListUnremindedDueBefore(ctx context.Context, cutoff time.Time) ([]*payment.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
	FROM payment_schedules
	WHERE schedule_status = $1 AND due_date <= $2
	ORDER BY due_date ASC`

	var schedules []*payment.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, types.ScheduleStatusScheduled, cutoff)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payment schedules awaiting reminders").
			Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}
