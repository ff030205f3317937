package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create inserts the account and sets its ID and timestamps.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByEmail looks the account up by normalized email.
	// Returns ErrAccountNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// List returns all accounts ordered by ID.
	List(ctx context.Context) ([]*domain.Account, error)

	// SetAdmin sets the administrator flag.
	// Returns ErrAccountNotFound if the account does not exist.
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error

	// Delete removes the account permanently.
	// Returns ErrAccountNotFound if the account does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of accounts.
	Count(ctx context.Context) (int64, error)

	// WithTx returns an AccountStore bound to tx.
	WithTx(tx *sql.Tx) AccountStore
}
