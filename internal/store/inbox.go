package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// ContactStore persists contact form messages.
type ContactStore interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	// Delete returns ErrContactMessageNotFound if the message does not exist.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx *sql.Tx) ContactStore
}

// SubscriptionStore persists newsletter subscriptions.
type SubscriptionStore interface {
	// Create returns ErrEmailExists if the email is already subscribed.
	Create(ctx context.Context, s *domain.Subscription) error
	List(ctx context.Context) ([]*domain.Subscription, error)
	// Delete returns ErrSubscriptionNotFound if the subscription does not exist.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx *sql.Tx) SubscriptionStore
}

// SettingsStore persists the singleton shelter settings record.
type SettingsStore interface {
	// Get returns the stored settings, or domain.DefaultShelterSettings when
	// none have been saved yet.
	Get(ctx context.Context) (*domain.ShelterSettings, error)
	// GetForUpdate is Get that also locks the record until the surrounding
	// transaction ends, so a read-modify-write cannot lose a concurrent edit.
	GetForUpdate(ctx context.Context) (*domain.ShelterSettings, error)
	// Save creates or replaces the settings record and sets UpdatedAt.
	Save(ctx context.Context, s *domain.ShelterSettings) error
	WithTx(tx *sql.Tx) SettingsStore
}
