package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// Tier is the minimum privilege an operation requires.
type Tier int

// Access tiers, from least to most privileged.
const (
	TierPublic Tier = iota
	TierAuthenticated
	TierAdministrator
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierAdministrator:
		return "administrator"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Effect names an action on an account that its owner may not perform on
// themselves.
type Effect string

// Protected effects.
const (
	EffectNone   Effect = ""
	EffectDemote Effect = "demote"
	EffectDelete Effect = "delete"
)

// Target identifies the account an operation acts on.
type Target struct {
	AccountID int64
	Effect    Effect
}

// Request describes an operation to authorize.
type Request struct {
	Tier  Tier
	Token string
	// Target is optional; it is checked only when Effect is set.
	Target Target
}

// Guard decides whether a caller may perform an operation. It never mutates
// state.
type Guard struct {
	tokens   JWTService
	accounts store.AccountStore
	logger   *slog.Logger
}

// NewGuard creates a Guard.
func NewGuard(tokens JWTService, accounts store.AccountStore, logger *slog.Logger) (*Guard, error) {
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if accounts == nil {
		return nil, fmt.Errorf("accounts store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		tokens:   tokens,
		accounts: accounts,
		logger:   logger.With(slog.String("component", "guard")),
	}, nil
}

// Authorize resolves the caller and enforces the tier and the
// self-protection rule. Public requests are allowed with a nil account.
func (g *Guard) Authorize(ctx context.Context, req Request) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if req.Tier == TierPublic {
		return nil, nil
	}

	if req.Token == "" {
		return nil, ErrMissingCredentials
	}

	claims, err := g.tokens.ValidateToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	account, err := g.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("token refers to a deleted account", slog.Int64("account_id", claims.AccountID))
			return nil, ErrUnknownAccount
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if req.Tier == TierAdministrator && !account.IsAdmin {
		log.Debug("administrator tier denied", slog.Int64("account_id", account.ID))
		return nil, ErrInsufficientPrivilege
	}

	if req.Target.Effect != EffectNone && req.Target.AccountID == account.ID {
		log.Info("blocked self-modification",
			slog.Int64("account_id", account.ID),
			slog.String("effect", string(req.Target.Effect)))
		return nil, ErrSelfModificationForbidden
	}

	return account, nil
}
