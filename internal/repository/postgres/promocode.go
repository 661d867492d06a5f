package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wildpine/wildpine/internal/domain/promocode"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type promoCodeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPromoCodeRepository(db *postgres.DB, logger *logger.Logger) promocode.Repository {
	return &promoCodeRepository{db: db, logger: logger}
}

const promoCodeColumns = `
	id, code, scope, retreat_id, room_id, type, amount_off, percent_off,
	max_redemptions, total_redemptions, valid_from, valid_until,
	status, created_at, updated_at, created_by, updated_by
`

func (r *promoCodeRepository) Create(ctx context.Context, m *promocode.PromoCode) error {
	query := `
	INSERT INTO promo_codes (` + promoCodeColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Code, m.Scope, m.RetreatID, m.RoomID, m.Type,
		m.AmountOff, m.PercentOff, m.MaxRedemptions, m.TotalRedemptions,
		m.ValidFrom, m.ValidUntil,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A promo code with this code already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create promo code").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *promoCodeRepository) Get(ctx context.Context, id string) (*promocode.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes WHERE id = $1 AND status != $2`

	var m promocode.PromoCode
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("promo code not found").
				WithHintf("Promo code %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get promo code").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	query := `SELECT ` + promoCodeColumns + `
	FROM promo_codes
	WHERE UPPER(code) = UPPER($1) AND status != $2`

	var m promocode.PromoCode
	err := r.db.GetContext(ctx, &m, query, code, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("promo code not found").
				WithHint("This promo code does not exist").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get promo code").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *promoCodeRepository) Update(ctx context.Context, m *promocode.PromoCode) error {
	query := `
	UPDATE promo_codes SET
		scope = $2, retreat_id = $3, room_id = $4, type = $5,
		amount_off = $6, percent_off = $7, max_redemptions = $8,
		valid_from = $9, valid_until = $10,
		status = $11, updated_at = $12, updated_by = $13
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Scope, m.RetreatID, m.RoomID, m.Type,
		m.AmountOff, m.PercentOff, m.MaxRedemptions,
		m.ValidFrom, m.ValidUntil,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update promo code").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "promo code")
}

func (r *promoCodeRepository) Delete(ctx context.Context, id string) error {
	query := `
	UPDATE promo_codes
	SET status = $2, updated_at = NOW(), updated_by = $3
	WHERE id = $1 AND status != $2`

	result, err := r.db.ExecContext(ctx, query, id, types.StatusDeleted, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete promo code").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "promo code")
}

func (r *promoCodeRepository) List(ctx context.Context, filter *types.PromoCodeFilter) ([]*promocode.PromoCode, error) {
	where, args := promoCodeWhere(filter)
	query := `SELECT ` + promoCodeColumns + ` FROM promo_codes ` + where
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(filter.GetSort(), "created_at"), sortOrder(filter.GetOrder()),
		len(args)+1, len(args)+2)
	args = append(args, filter.GetLimit(), filter.GetOffset())

	var codes []*promocode.PromoCode
	err := r.db.SelectContext(ctx, &codes, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list promo codes").
			Mark(ierr.ErrDatabase)
	}
	return codes, nil
}

func (r *promoCodeRepository) Count(ctx context.Context, filter *types.PromoCodeFilter) (int, error) {
	where, args := promoCodeWhere(filter)
	query := `SELECT COUNT(*) FROM promo_codes ` + where

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count promo codes").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func promoCodeWhere(filter *types.PromoCodeFilter) (string, []interface{}) {
	args := []interface{}{types.StatusDeleted}
	where := `WHERE status != $1`
	if filter.RetreatID != "" {
		args = append(args, filter.RetreatID)
		where += fmt.Sprintf(` AND retreat_id = $%d`, len(args))
	}
	if filter.Scope != nil {
		args = append(args, *filter.Scope)
		where += fmt.Sprintf(` AND scope = $%d`, len(args))
	}
	return where, args
}

// IncrementRedemptions bumps the usage counter while re-checking the limit in
// the same statement, so the database arbitrates concurrent redemptions of
// the last slot.
func (r *promoCodeRepository) IncrementRedemptions(ctx context.Context, id string) error {
	query := `
	UPDATE promo_codes
	SET total_redemptions = total_redemptions + 1, updated_at = NOW()
	WHERE id = $1
		AND status = $2
		AND (max_redemptions IS NULL OR total_redemptions < max_redemptions)`

	result, err := r.db.ExecContext(ctx, query, id, types.StatusPublished)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to redeem promo code").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("promo code exhausted").
			WithHint("This promo code has reached its redemption limit").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}
