package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/subscriber"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type subscriberRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriberRepository(db *postgres.DB, logger *logger.Logger) subscriber.Repository {
	return &subscriberRepository{db: db, logger: logger}
}

const subscriberColumns = `
	id, email, name, token, confirmed_at, unsubscribed_at,
	status, created_at, updated_at, created_by, updated_by
`

func (r *subscriberRepository) Create(ctx context.Context, m *subscriber.Subscriber) error {
	query := `
	INSERT INTO subscribers (` + subscriberColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Email, m.Name, m.Token, m.ConfirmedAt, m.UnsubscribedAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("This email address is already subscribed").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create subscriber").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriberRepository) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	return r.getBy(ctx, "id", id)
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + `
	FROM subscribers WHERE LOWER(email) = LOWER($1)`

	var m subscriber.Subscriber
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscriber not found").
				WithHint("No subscriber with this email").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscriber").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *subscriberRepository) GetByToken(ctx context.Context, token string) (*subscriber.Subscriber, error) {
	return r.getBy(ctx, "token", token)
}

func (r *subscriberRepository) getBy(ctx context.Context, column, value string) (*subscriber.Subscriber, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscribers WHERE %s = $1`, subscriberColumns, column)

	var m subscriber.Subscriber
	err := r.db.GetContext(ctx, &m, query, value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscriber not found").
				WithHint("The subscriber was not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscriber").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *subscriberRepository) Update(ctx context.Context, m *subscriber.Subscriber) error {
	query := `
	UPDATE subscribers SET
		name = $2, confirmed_at = $3, unsubscribed_at = $4,
		status = $5, updated_at = $6, updated_by = $7
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.ConfirmedAt, m.UnsubscribedAt,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscriber").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "subscriber")
}

func (r *subscriberRepository) List(ctx context.Context, filter *types.SubscriberFilter) ([]*subscriber.Subscriber, error) {
	where, args := subscriberWhere(filter)
	query := `SELECT ` + subscriberColumns + ` FROM subscribers ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "created_at"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var subscribers []*subscriber.Subscriber
	err := r.db.SelectContext(ctx, &subscribers, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscribers").
			Mark(ierr.ErrDatabase)
	}
	return subscribers, nil
}

func (r *subscriberRepository) Count(ctx context.Context, filter *types.SubscriberFilter) (int, error) {
	where, args := subscriberWhere(filter)
	query := `SELECT COUNT(*) FROM subscribers ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count subscribers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func subscriberWhere(filter *types.SubscriberFilter) (string, []interface{}) {
	args := []interface{}{types.StatusDeleted}
	where := `WHERE status != $1`
	if filter.ConfirmedOnly {
		where += ` AND confirmed_at IS NOT NULL AND unsubscribed_at IS NULL`
	}
	return where, args
}

func (r *subscriberRepository) ListMailable(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + `
	FROM subscribers
	WHERE confirmed_at IS NOT NULL
		AND unsubscribed_at IS NULL
		AND status = $1
	ORDER BY created_at ASC`

	var subscribers []*subscriber.Subscriber
	err := r.db.SelectContext(ctx, &subscribers, query, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list mailable subscribers").
			Mark(ierr.ErrDatabase)
	}
	return subscribers, nil
}

func (r *subscriberRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM subscribers WHERE created_at >= $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, since)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count signups").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
