package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

const accountColumns = `id, email, name, last_name, password_hash, is_admin, created_at, updated_at`

// PostgresAccountStore implements store.AccountStore.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates an AccountStore over db, which may be a
// connection pool or a transaction. A nil logger falls back to slog.Default().
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

// WithTx implements store.AccountStore.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{db: tx, logger: s.logger}
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.LastName,
		&a.PasswordHash,
		&a.IsAdmin,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create implements store.AccountStore.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO accounts (email, name, last_name, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		account.Email,
		account.Name,
		account.LastName,
		account.PasswordHash,
		account.IsAdmin,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrEmailExists) {
			log.Debug("account email already registered")
			return mapped
		}
		log.Error("failed to create account", slog.String("error", err.Error()))
		return mapped
	}

	log.Info("account created", slog.Int64("account_id", account.ID))
	return nil
}

// GetByID implements store.AccountStore.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.Int64("account_id", id))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.String("error", err.Error()),
			slog.Int64("account_id", id))
		return nil, MapError(err)
	}
	return a, nil
}

// GetByEmail implements store.AccountStore.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`,
		domain.NormalizeEmail(email))
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by email", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return a, nil
}

// List implements store.AccountStore.
func (s *PostgresAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		log.Error("failed to list accounts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	accounts := []*domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			log.Error("failed to scan account row", slog.String("error", err.Error()))
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return accounts, nil
}

// SetAdmin implements store.AccountStore.
func (s *PostgresAccountStore) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET is_admin = $1, updated_at = NOW() WHERE id = $2`,
		isAdmin, id)
	if err != nil {
		log.Error("failed to update admin flag",
			slog.String("error", err.Error()),
			slog.Int64("account_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAccountNotFound); err != nil {
		return err
	}

	log.Info("account admin flag updated",
		slog.Int64("account_id", id),
		slog.Bool("is_admin", isAdmin))
	return nil
}

// Delete implements store.AccountStore.
func (s *PostgresAccountStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete account",
			slog.String("error", err.Error()),
			slog.Int64("account_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAccountNotFound); err != nil {
		return err
	}

	log.Info("account deleted", slog.Int64("account_id", id))
	return nil
}

// Count implements store.AccountStore.
func (s *PostgresAccountStore) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, s.db, "accounts")
}
