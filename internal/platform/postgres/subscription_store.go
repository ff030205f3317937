package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// PostgresSubscriptionStore implements store.SubscriptionStore.
type PostgresSubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubscriptionStore creates a SubscriptionStore over db.
func NewPostgresSubscriptionStore(db store.DBTX, logger *slog.Logger) *PostgresSubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

var _ store.SubscriptionStore = (*PostgresSubscriptionStore)(nil)

// WithTx implements store.SubscriptionStore.
func (s *PostgresSubscriptionStore) WithTx(tx *sql.Tx) store.SubscriptionStore {
	return &PostgresSubscriptionStore{db: tx, logger: s.logger}
}

// Create implements store.SubscriptionStore.
func (s *PostgresSubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO subscriptions (email, created_at) VALUES ($1, $2) RETURNING id`,
		sub.Email, sub.CreatedAt,
	).Scan(&sub.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("email already subscribed")
			return mapped
		}
		log.Error("failed to create subscription", slog.String("error", err.Error()))
		return mapped
	}

	log.Info("subscription created", slog.Int64("subscription_id", sub.ID))
	return nil
}

// List implements store.SubscriptionStore.
func (s *PostgresSubscriptionStore) List(ctx context.Context) ([]*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, created_at FROM subscriptions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Error("failed to list subscriptions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	subs := []*domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			log.Error("failed to scan subscription row", slog.String("error", err.Error()))
			return nil, err
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return subs, nil
}

// Delete implements store.SubscriptionStore.
func (s *PostgresSubscriptionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete subscription",
			slog.String("error", err.Error()),
			slog.Int64("subscription_id", id))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrSubscriptionNotFound)
}

// Count implements store.SubscriptionStore.
func (s *PostgresSubscriptionStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "subscriptions")
}
