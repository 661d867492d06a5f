package postgres

import (
	"context"
	"database/sql"

	"github.com/wildpine/wildpine/internal/domain/room"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type roomRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRoomRepository(db *postgres.DB, logger *logger.Logger) room.Repository {
	return &roomRepository{db: db, logger: logger}
}

const roomColumns = `
	id, retreat_id, name, occupancy, price_delta, quantity,
	status, created_at, updated_at, created_by, updated_by
`

func (r *roomRepository) Create(ctx context.Context, m *room.Room) error {
	query := `
	INSERT INTO rooms (` + roomColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.RetreatID, m.Name, m.Occupancy, m.PriceDelta, m.Quantity,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create room").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id string) (*room.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND status != $2`

	var m room.Room
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("room not found").
				WithHintf("Room %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get room").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *roomRepository) Update(ctx context.Context, m *room.Room) error {
	query := `
	UPDATE rooms SET
		name = $2, occupancy = $3, price_delta = $4, quantity = $5,
		status = $6, updated_at = $7, updated_by = $8
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Occupancy, m.PriceDelta, m.Quantity,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update room").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "room")
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	query := `
	UPDATE rooms
	SET status = $2, updated_at = NOW(), updated_by = $3
	WHERE id = $1 AND status != $2`

	result, err := r.db.ExecContext(ctx, query, id, types.StatusDeleted, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete room").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "room")
}

func (r *roomRepository) ListByRetreat(ctx context.Context, retreatID string) ([]*room.Room, error) {
	query := `SELECT ` + roomColumns + `
	FROM rooms
	WHERE retreat_id = $1 AND status != $2
	ORDER BY price_delta ASC, name ASC`

	var rooms []*room.Room
	err := r.db.SelectContext(ctx, &rooms, query, retreatID, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list rooms").
			Mark(ierr.ErrDatabase)
	}
	return rooms, nil
}

func (r *roomRepository) CountHeldBookings(ctx context.Context, roomID string) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM bookings
	WHERE room_id = $1 AND booking_status IN ($2, $3)`

	var count int
	err := r.db.GetContext(ctx, &count, query, roomID,
		types.BookingStatusPending, types.BookingStatusConfirmed)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count room bookings").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
