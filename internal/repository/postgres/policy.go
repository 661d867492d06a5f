package postgres

import (
	"context"
	"database/sql"

	"github.com/wildpine/wildpine/internal/domain/policy"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
	"github.com/wildpine/wildpine/internal/types"
)

type policyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPolicyRepository(db *postgres.DB, logger *logger.Logger) policy.Repository {
	return &policyRepository{db: db, logger: logger}
}

const policyColumns = `
	id, slug, title, body, version, effective_at,
	status, created_at, updated_at, created_by, updated_by
`

func (r *policyRepository) Create(ctx context.Context, m *policy.Policy) error {
	query := `
	INSERT INTO policies (` + policyColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Slug, m.Title, m.Body, m.Version, m.EffectiveAt,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A policy with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create policy").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *policyRepository) Get(ctx context.Context, id string) (*policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1 AND status != $2`

	var m policy.Policy
	err := r.db.GetContext(ctx, &m, query, id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("policy not found").
				WithHintf("Policy %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get policy").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *policyRepository) GetBySlug(ctx context.Context, slug string) (*policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE slug = $1 AND status != $2`

	var m policy.Policy
	err := r.db.GetContext(ctx, &m, query, slug, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("policy not found").
				WithHintf("Policy %s was not found", slug).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get policy").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *policyRepository) Update(ctx context.Context, m *policy.Policy) error {
	query := `
	UPDATE policies SET
		title = $2, body = $3, version = $4, effective_at = $5,
		status = $6, updated_at = $7, updated_by = $8
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Body, m.Version, m.EffectiveAt,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update policy").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "policy")
}

func (r *policyRepository) List(ctx context.Context) ([]*policy.Policy, error) {
	query := `SELECT ` + policyColumns + `
	FROM policies
	WHERE status != $1
	ORDER BY slug ASC`

	var policies []*policy.Policy
	err := r.db.SelectContext(ctx, &policies, query, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policies").
			Mark(ierr.ErrDatabase)
	}
	return policies, nil
}
