package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AccountService implements the administrator's user management. Callers are
// expected to have passed the access guard, which also enforces that an
// administrator cannot demote or delete their own account.
type AccountService struct {
	accounts store.AccountStore
	tx       store.Transactor
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(accounts store.AccountStore, tx store.Transactor, logger *slog.Logger) (*AccountService, error) {
	if accounts == nil {
		return nil, fmt.Errorf("accounts store cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		accounts: accounts,
		tx:       tx,
		logger:   logger.With(slog.String("component", "account_service")),
	}, nil
}

// List returns every account, oldest first.
func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns one account or store.ErrAccountNotFound.
func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Promote grants administrator rights. Returns ErrAlreadyAdmin when the
// account already has them.
func (s *AccountService) Promote(ctx context.Context, id int64) (*domain.Account, error) {
	return s.setAdmin(ctx, id, true)
}

// Demote revokes administrator rights. Returns ErrNotAdmin when the account
// has none.
func (s *AccountService) Demote(ctx context.Context, id int64) (*domain.Account, error) {
	return s.setAdmin(ctx, id, false)
}

func (s *AccountService) setAdmin(ctx context.Context, id int64, isAdmin bool) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Account
	err := s.tx.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)

		account, err := accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case isAdmin && account.IsAdmin:
			return ErrAlreadyAdmin
		case !isAdmin && !account.IsAdmin:
			return ErrNotAdmin
		}

		if err := accounts.SetAdmin(ctx, id, isAdmin); err != nil {
			return err
		}
		account.IsAdmin = isAdmin
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to change admin flag",
				slog.String("error", err.Error()),
				slog.Int64("account_id", id),
				slog.Bool("is_admin", isAdmin))
		}
		return nil, fmt.Errorf("failed to change admin flag: %w", err)
	}

	log.Info("admin flag changed",
		slog.Int64("account_id", id),
		slog.Bool("is_admin", isAdmin))
	return updated, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	log.Info("account deleted", slog.Int64("account_id", id))
	return nil
}
