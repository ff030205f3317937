package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// AdoptionStore defines the interface for adoption application persistence.
type AdoptionStore interface {
	// Create inserts the application and sets its ID and CreatedAt.
	Create(ctx context.Context, app *domain.AdoptionApplication) error

	// GetByID returns ErrApplicationNotFound if the application does not exist.
	GetByID(ctx context.Context, id int64) (*domain.AdoptionApplication, error)

	// List returns applications newest first. A non-zero animalID restricts
	// the result to that animal.
	List(ctx context.Context, animalID int64) ([]*domain.AdoptionApplication, error)

	// Delete returns ErrApplicationNotFound if the application does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of applications.
	Count(ctx context.Context) (int64, error)

	// WithTx returns an AdoptionStore bound to tx.
	WithTx(tx *sql.Tx) AdoptionStore
}
