package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// VolunteerStore defines the interface for volunteer persistence.
type VolunteerStore interface {
	// Create inserts the volunteer and sets its ID and timestamps.
	// Returns ErrEmailExists or ErrPhoneExists on a uniqueness conflict.
	Create(ctx context.Context, v *domain.Volunteer) error

	// GetByID returns ErrVolunteerNotFound if the volunteer does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Volunteer, error)

	// List returns volunteers newest first. A non-empty status filters.
	List(ctx context.Context, status domain.VolunteerStatus) ([]*domain.Volunteer, error)

	// Update overwrites the volunteer's details and status.
	// Returns ErrVolunteerNotFound, ErrEmailExists or ErrPhoneExists.
	Update(ctx context.Context, v *domain.Volunteer) error

	// UpdateStatus sets the review status.
	// Returns ErrVolunteerNotFound if the volunteer does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.VolunteerStatus) error

	// Delete returns ErrVolunteerNotFound if the volunteer does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of volunteers.
	Count(ctx context.Context) (int64, error)

	// WithTx returns a VolunteerStore bound to tx.
	WithTx(tx *sql.Tx) VolunteerStore
}
