package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// AnimalFilter narrows List results. Zero values match everything.
type AnimalFilter struct {
	Status domain.AnimalStatus
	Type   string
}

// AnimalStore defines the interface for animal persistence.
type AnimalStore interface {
	// Create inserts the animal and sets its ID and timestamps.
	Create(ctx context.Context, animal *domain.Animal) error

	// GetByID returns ErrAnimalNotFound if the animal does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Animal, error)

	// GetByIDForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends. Use it on a store bound with WithTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Animal, error)

	// List returns animals matching filter, newest first.
	List(ctx context.Context, filter AnimalFilter) ([]*domain.Animal, error)

	// Update overwrites every attribute of the animal, including status and
	// media. Returns ErrAnimalNotFound if the animal does not exist.
	Update(ctx context.Context, animal *domain.Animal) error

	// UpdateStatus sets the status unconditionally.
	// Returns ErrAnimalNotFound if the animal does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.AnimalStatus) error

	// AppendMedia appends references to the media list atomically.
	// Returns ErrAnimalNotFound if the animal does not exist.
	AppendMedia(ctx context.Context, id int64, media []domain.Media) error

	// RemoveMedia drops the reference with publicID from the media list
	// atomically and returns it. Returns ErrAnimalNotFound if the animal does
	// not exist and ErrAnimalMediaNotFound if it has no such reference.
	RemoveMedia(ctx context.Context, id int64, publicID string) (*domain.Media, error)

	// MarkPending moves the animal to pending unless it is adopted. It reports
	// false, without error, when no row qualified: either the animal does not
	// exist or it is adopted. The row stays locked until the surrounding
	// transaction ends.
	MarkPending(ctx context.Context, id int64) (bool, error)

	// Exists reports whether an animal with id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes the animal. Applications that reference it are kept.
	// Returns ErrAnimalNotFound if the animal does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of animals.
	Count(ctx context.Context) (int64, error)

	// WithTx returns an AnimalStore bound to tx.
	WithTx(tx *sql.Tx) AnimalStore
}
