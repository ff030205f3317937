package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email    string
	Name     string
	LastName string
	Password string
}

// CredentialService registers accounts and verifies email/password pairs.
type CredentialService struct {
	accounts store.AccountStore
	hasher   PasswordHasher
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialService creates a CredentialService.
func NewCredentialService(
	accounts store.AccountStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) (*CredentialService, error) {
	if accounts == nil {
		return nil, fmt.Errorf("accounts store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialService{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger.With(slog.String("component", "credential_service")),
	}, nil
}

// Register creates a non-admin account. It returns store.ErrEmailExists when
// the email is taken and a domain validation error for bad input.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := domain.NewAccount(in.Email, in.Name, in.LastName)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	// The unique index is the real guarantee; the pre-check just avoids
	// hashing for an obvious duplicate.
	if _, err := s.accounts.GetByEmail(ctx, account.Email); err == nil {
		return nil, store.ErrEmailExists
	} else if !errors.Is(err, store.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = hash

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, store.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	log.Info("account registered", slog.Int64("account_id", account.ID))
	return account, nil
}

// Verify returns the account matching email and password. An unknown email
// and a wrong password both yield ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// Spend the same bcrypt time as a real comparison.
			_ = s.hasher.Compare(s.dummy(), password)
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		log.Debug("login attempt with wrong password", slog.Int64("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// dummy returns a hash generated once with the configured cost.
func (s *CredentialService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("pawscout-dummy-password")
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", slog.String("error", err.Error()))
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
