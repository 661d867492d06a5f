package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/retreat"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type retreatRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRetreatRepository(db *postgres.DB, logger *logger.Logger) retreat.Repository {
	return &retreatRepository{db: db, logger: logger}
}

const retreatColumns = `
	id, title, slug, summary, description, location, start_date, end_date,
	base_price, currency, capacity, early_bird_percent, early_bird_until,
	published, deleted_at, status, created_at, updated_at, created_by, updated_by
`

func (r *retreatRepository) Create(ctx context.Context, m *retreat.Retreat) error {
	query := `
	INSERT INTO retreats (` + retreatColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Slug, m.Summary, m.Description, m.Location,
		m.StartDate, m.EndDate, m.BasePrice, m.Currency, m.Capacity,
		m.EarlyBirdPercent, m.EarlyBirdUntil, m.Published, m.DeletedAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A retreat with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create retreat").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *retreatRepository) Get(ctx context.Context, id string) (*retreat.Retreat, error) {
	query := `SELECT ` + retreatColumns + ` FROM retreats WHERE id = $1 AND status != $2`

	var m retreat.Retreat
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("retreat not found").
				WithHintf("Retreat %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get retreat").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *retreatRepository) GetBySlug(ctx context.Context, slug string) (*retreat.Retreat, error) {
	query := `SELECT ` + retreatColumns + `
	FROM retreats
	WHERE slug = $1 AND deleted_at IS NULL AND status != $2`

	var m retreat.Retreat
	err := r.db.GetContext(ctx, &m, query, slug, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("retreat not found").
				WithHintf("Retreat %s was not found", slug).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get retreat").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *retreatRepository) Update(ctx context.Context, m *retreat.Retreat) error {
	query := `
	UPDATE retreats SET
		title = $2, slug = $3, summary = $4, description = $5, location = $6,
		start_date = $7, end_date = $8, base_price = $9, currency = $10,
		capacity = $11, early_bird_percent = $12, early_bird_until = $13,
		published = $14, status = $15, updated_at = $16, updated_by = $17
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Slug, m.Summary, m.Description, m.Location,
		m.StartDate, m.EndDate, m.BasePrice, m.Currency, m.Capacity,
		m.EarlyBirdPercent, m.EarlyBirdUntil, m.Published,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A retreat with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update retreat").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "retreat")
}

func (r *retreatRepository) List(ctx context.Context, filter *types.RetreatFilter) ([]*retreat.Retreat, error) {
	where, args := retreatWhere(filter)
	query := `SELECT ` + retreatColumns + ` FROM retreats ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "start_date"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var retreats []*retreat.Retreat
	err := r.db.SelectContext(ctx, &retreats, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list retreats").
			Mark(ierr.ErrDatabase)
	}
	return retreats, nil
}

func (r *retreatRepository) Count(ctx context.Context, filter *types.RetreatFilter) (int, error) {
	where, args := retreatWhere(filter)
	query := `SELECT COUNT(*) FROM retreats ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count retreats").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// retreatWhere builds the shared WHERE clause for List and Count
func retreatWhere(filter *types.RetreatFilter) (string, []interface{}) {
	args := []interface{}{types.StatusDeleted}
	where := `WHERE status != $1`
	if filter.Trashed {
		where += ` AND deleted_at IS NOT NULL`
	} else {
		where += ` AND deleted_at IS NULL`
	}
	if filter.PublishedOnly {
		where += ` AND published = true`
	}
	if filter.UpcomingOnly {
		where += ` AND start_date > NOW()`
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where += fmt.Sprintf(` AND location ILIKE $%d`, len(args))
	}
	return where, args
}

func (r *retreatRepository) Trash(ctx context.Context, id string, at time.Time) error {
	query := `
	UPDATE retreats
	SET deleted_at = $2, published = false, updated_at = $2, updated_by = $3
	WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to trash retreat").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "retreat")
}

func (r *retreatRepository) Restore(ctx context.Context, id string) error {
	query := `
	UPDATE retreats
	SET deleted_at = NULL, updated_at = NOW(), updated_by = $2
	WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.ExecContext(ctx, query, id, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to restore retreat").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "retreat")
}

func (r *retreatRepository) ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*retreat.Retreat, error) {
	query := `SELECT ` + retreatColumns + `
	FROM retreats
	WHERE deleted_at IS NOT NULL AND deleted_at <= $1`

	var retreats []*retreat.Retreat
	err := r.db.SelectContext(ctx, &retreats, query, cutoff)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list trashed retreats").
			Mark(ierr.ErrDatabase)
	}
	return retreats, nil
}

func (r *retreatRepository) Purge(ctx context.Context, id string) error {
	query := `DELETE FROM retreats WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to purge retreat").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "retreat")
}
