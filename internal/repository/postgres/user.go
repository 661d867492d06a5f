package postgres

import (
	"context"
	"database/sql"

	"github.com/wildpine/wildpine/internal/domain/user"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/postgres"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `
	id, email, name, password_hash,
	status, created_at, updated_at, created_by, updated_by
`

func (r *userRepository) Create(ctx context.Context, m *user.User) error {
	query := `
	INSERT INTO users (` + userColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Email, m.Name, m.PasswordHash,
		m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("A user with email %s already exists", m.Email).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var m user.User
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHintf("User %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	var m user.User
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHint("No user with that email").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *userRepository) Update(ctx context.Context, m *user.User) error {
	query := `
	UPDATE users SET
		email = $2, name = $3, password_hash = $4,
		status = $5, updated_at = $6, updated_by = $7
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.Email, m.Name, m.PasswordHash,
		m.Status, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return expectOneRow(result, "user")
}
