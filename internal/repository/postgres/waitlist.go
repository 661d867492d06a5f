package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wildpine/wildpine/internal/domain/waitlist"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type waitlistRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewWaitlistRepository(db *postgres.DB, logger *logger.Logger) waitlist.Repository {
	return &waitlistRepository{db: db, logger: logger}
}

const waitlistColumns = `
	id, retreat_id, room_id, email, name, waitlist_status, notified_at,
	status, created_at, updated_at, created_by, updated_by
`

func (r *waitlistRepository) Create(ctx context.Context, m *waitlist.Entry) error {
	query := `
	INSERT INTO waitlist_entries (` + waitlistColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.RetreatID, m.RoomID, m.Email, m.Name,
		m.WaitlistStatus, m.NotifiedAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("This email is already on the waitlist for this retreat").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create waitlist entry").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *waitlistRepository) Get(ctx context.Context, id string) (*waitlist.Entry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1`

	var m waitlist.Entry
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("waitlist entry not found").
				WithHintf("Waitlist entry %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get waitlist entry").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *waitlistRepository) Update(ctx context.Context, m *waitlist.Entry) error {
	query := `
	UPDATE waitlist_entries SET
		waitlist_status = $2, notified_at = $3,
		status = $4, updated_at = $5, updated_by = $6
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.WaitlistStatus, m.NotifiedAt,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update waitlist entry").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "waitlist entry")
}

func waitlistWhere(filter *types.WaitlistFilter) (string, []interface{}) {
	args := []interface{}{}
	where := `WHERE 1=1`
	if filter.RetreatID != "" {
		args = append(args, filter.RetreatID)
		where += fmt.Sprintf(` AND retreat_id = $%d`, len(args))
	}
	if filter.RoomID != "" {
		args = append(args, filter.RoomID)
		where += fmt.Sprintf(` AND room_id = $%d`, len(args))
	}
	if filter.WaitlistStatus != nil {
		args = append(args, *filter.WaitlistStatus)
		where += fmt.Sprintf(` AND waitlist_status = $%d`, len(args))
	}
	return where, args
}

func (r *waitlistRepository) List(ctx context.Context, filter *types.WaitlistFilter) ([]*waitlist.Entry, error) {
	where, args := waitlistWhere(filter)

	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries ` + where
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var entries []*waitlist.Entry
	err := r.db.SelectContext(ctx, &entries, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list waitlist entries").
			Mark(ierr.ErrDatabase)
	}
	return entries, nil
}

func (r *waitlistRepository) Count(ctx context.Context, filter *types.WaitlistFilter) (int, error) {
	where, args := waitlistWhere(filter)
	query := `SELECT COUNT(*) FROM waitlist_entries ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count waitlist entries").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *waitlistRepository) Exists(ctx context.Context, retreatID, email string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM waitlist_entries
		WHERE retreat_id = $1
			AND LOWER(email) = LOWER($2)
			AND waitlist_status IN ($3, $4)
	)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, retreatID, email,
		types.WaitlistStatusWaiting, types.WaitlistStatusNotified)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check waitlist").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

func (r *waitlistRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM waitlist_entries WHERE created_at >= $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, since)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count waitlist joins").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *waitlistRepository) OldestWaiting(ctx context.Context, retreatID string, roomID *string) (*waitlist.Entry, error) {
	args := []interface{}{retreatID, types.WaitlistStatusWaiting}
	query := `SELECT ` + waitlistColumns + `
	FROM waitlist_entries
	WHERE retreat_id = $1 AND waitlist_status = $2`
	if roomID != nil {
		args = append(args, *roomID)
		query += fmt.Sprintf(` AND (room_id IS NULL OR room_id = $%d)`, len(args))
	}
	query += ` ORDER BY created_at ASC LIMIT 1`

	var m waitlist.Entry
	err := r.db.GetContext(ctx, &m, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to find waiting entry").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}
