package postgres

import "context"

// IClient is the transactional surface services depend on. Keeping it
// an interface lets service tests substitute a no-op client alongside
// the in-memory repositories.
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

var _ IClient = (*DB)(nil)
