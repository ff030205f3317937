package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// PostgresContactStore implements store.ContactStore.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a ContactStore over db.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

var _ store.ContactStore = (*PostgresContactStore)(nil)

// WithTx implements store.ContactStore.
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{db: tx, logger: s.logger}
}

// Create implements store.ContactStore.
func (s *PostgresContactStore) Create(ctx context.Context, m *domain.ContactMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO contact_messages (name, last_name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		m.Name, m.LastName, m.Email, m.Subject, m.Message, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		log.Error("failed to create contact message", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("contact message stored", slog.Int64("message_id", m.ID))
	return nil
}

// List implements store.ContactStore.
func (s *PostgresContactStore) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, last_name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		log.Error("failed to list contact messages", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	messages := []*domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.LastName, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			log.Error("failed to scan contact message row", slog.String("error", err.Error()))
			return nil, err
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return messages, nil
}

// Delete implements store.ContactStore.
func (s *PostgresContactStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete contact message",
			slog.String("error", err.Error()),
			slog.Int64("message_id", id))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrContactMessageNotFound)
}

// Count implements store.ContactStore.
func (s *PostgresContactStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "contact_messages")
}
