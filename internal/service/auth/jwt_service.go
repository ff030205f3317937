package auth

import (
	"context"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the account and returns it with
	// its expiry time.
	GenerateToken(ctx context.Context, account *domain.Account) (string, time.Time, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns its claims. It never consults persistent state, so a token stays
	// valid for its whole lifetime even if the account changes.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	// AccountID is the numeric ID of the account the token was issued for.
	AccountID int64

	// Subject is the account email at issue time.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
