package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/booking"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type bookingRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBookingRepository(db *postgres.DB, logger *logger.Logger) booking.Repository {
	return &bookingRepository{db: db, logger: logger}
}

const bookingColumns = `
	id, retreat_id, room_id, customer_name, customer_email, guests,
	booking_status, amount_total, amount_paid, currency, promo_code_id,
	discount_applied, discount_source, notes,
	status, created_at, updated_at, created_by, updated_by
`

func (r *bookingRepository) Create(ctx context.Context, m *booking.Booking) error {
	query := `
	INSERT INTO bookings (` + bookingColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.RetreatID, m.RoomID, m.CustomerName, m.CustomerEmail, m.Guests,
		m.BookingStatus, m.AmountTotal, m.AmountPaid, m.Currency, m.PromoCodeID,
		m.DiscountApplied, m.DiscountSource, m.Notes,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create booking").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND status != $2`

	var m booking.Booking
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("booking not found").
				WithHintf("Booking %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get booking").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *bookingRepository) Update(ctx context.Context, m *booking.Booking) error {
	query := `
	UPDATE bookings SET
		room_id = $2, customer_name = $3, guests = $4, booking_status = $5,
		amount_total = $6, amount_paid = $7, promo_code_id = $8,
		discount_applied = $9, discount_source = $10, notes = $11,
		status = $12, updated_at = $13, updated_by = $14
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.RoomID, m.CustomerName, m.Guests, m.BookingStatus,
		m.AmountTotal, m.AmountPaid, m.PromoCodeID,
		m.DiscountApplied, m.DiscountSource, m.Notes,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update booking").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "booking")
}

func (r *bookingRepository) List(ctx context.Context, filter *types.BookingFilter) ([]*booking.Booking, error) {
	where, args := bookingWhere(filter)
	query := `SELECT ` + bookingColumns + ` FROM bookings ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "created_at"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var bookings []*booking.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list bookings").
			Mark(ierr.ErrDatabase)
	}
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter *types.BookingFilter) (int, error) {
	where, args := bookingWhere(filter)
	query := `SELECT COUNT(*) FROM bookings ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count bookings").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func bookingWhere(filter *types.BookingFilter) (string, []interface{}) {
	args := []interface{}{types.StatusDeleted}
	where := `WHERE status != $1`
	if filter.RetreatID != "" {
		args = append(args, filter.RetreatID)
		where += fmt.Sprintf(` AND retreat_id = $%d`, len(args))
	}
	if filter.RoomID != "" {
		args = append(args, filter.RoomID)
		where += fmt.Sprintf(` AND room_id = $%d`, len(args))
	}
	if filter.CustomerEmail != "" {
		args = append(args, filter.CustomerEmail)
		where += fmt.Sprintf(` AND LOWER(customer_email) = LOWER($%d)`, len(args))
	}
	if filter.BookingStatus != nil {
		args = append(args, *filter.BookingStatus)
		where += fmt.Sprintf(` AND booking_status = $%d`, len(args))
	}
	return where, args
}

func (r *bookingRepository) ExistsRecent(ctx context.Context, retreatID, email string, since time.Time) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE retreat_id = $1
			AND LOWER(customer_email) = LOWER($2)
			AND created_at >= $3
			AND booking_status IN ($4, $5)
	)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, retreatID, email, since,
		types.BookingStatusPending, types.BookingStatusConfirmed)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check for duplicate booking").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

func (r *bookingRepository) ListHeldByRoom(ctx context.Context, roomID string) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1 AND booking_status IN ($2, $3)
	ORDER BY created_at ASC`

	var bookings []*booking.Booking
	err := r.db.SelectContext(ctx, &bookings, query, roomID,
		types.BookingStatusPending, types.BookingStatusConfirmed)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list room bookings").
			Mark(ierr.ErrDatabase)
	}
	return bookings, nil
}

func (r *bookingRepository) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	query := `
	SELECT ` + prefixColumns("b", bookingColumns) + `
	FROM bookings b
	JOIN retreats r ON r.id = b.retreat_id
	WHERE b.booking_status = $1 AND r.end_date < $2`

	var bookings []*booking.Booking
	err := r.db.SelectContext(ctx, &bookings, query, types.BookingStatusConfirmed, cutoff)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list ended bookings").
			Mark(ierr.ErrDatabase)
	}
	return bookings, nil
}

func (r *bookingRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE created_at >= $1 AND created_at < $2 AND status != $3
	ORDER BY created_at ASC`

	var bookings []*booking.Booking
	err := r.db.SelectContext(ctx, &bookings, query, from, to, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list bookings for period").
			Mark(ierr.ErrDatabase)
	}
	return bookings, nil
}
