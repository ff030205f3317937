package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

// Authorizer decides whether a request may proceed. *auth.Guard implements it.
type Authorizer interface {
	Authorize(ctx context.Context, req auth.Request) (*domain.Account, error)
}

// TargetParam is the route parameter naming the account an operation acts on.
const TargetParam = "id"

// AuthMiddleware enforces access tiers on routes.
type AuthMiddleware struct {
	guard Authorizer
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(guard Authorizer) *AuthMiddleware {
	if guard == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("guard cannot be nil for AuthMiddleware")
	}
	return &AuthMiddleware{guard: guard}
}

// bearerToken extracts the token from the Authorization header. A missing
// header yields "" and no error.
func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.ContainsRune(token, ' ') {
		return "", auth.ErrMalformedToken
	}
	return token, nil
}

// Require admits requests that satisfy tier. When effect is set the route
// parameter TargetParam names the account acted on, and a caller may not
// apply the effect to themselves. The resolved account is stored in the
// request context.
func (m *AuthMiddleware) Require(tier auth.Tier, effect auth.Effect) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				respondAuthError(w, r, err, effect)
				return
			}

			req := auth.Request{Tier: tier, Token: token}
			if effect != auth.EffectNone {
				// An unparsable ID cannot match the caller; the handler rejects it.
				id, _ := strconv.ParseInt(chi.URLParam(r, TargetParam), 10, 64)
				req.Target = auth.Target{AccountID: id, Effect: effect}
			}

			account, err := m.guard.Authorize(r.Context(), req)
			if err != nil {
				respondAuthError(w, r, err, effect)
				return
			}

			ctx := r.Context()
			if account != nil {
				ctx = shared.WithAccount(ctx, account)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticated is shorthand for Require(auth.TierAuthenticated, auth.EffectNone).
func (m *AuthMiddleware) Authenticated(next http.Handler) http.Handler {
	return m.Require(auth.TierAuthenticated, auth.EffectNone)(next)
}

// Admin is shorthand for Require(auth.TierAdministrator, auth.EffectNone).
func (m *AuthMiddleware) Admin(next http.Handler) http.Handler {
	return m.Require(auth.TierAdministrator, auth.EffectNone)(next)
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error, effect auth.Effect) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authentication required", err)
	case errors.Is(err, auth.ErrExpiredToken):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
	case errors.Is(err, auth.ErrMalformedToken), errors.Is(err, auth.ErrUnknownAccount):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
			shared.WithElevatedLogLevel())
	case errors.Is(err, auth.ErrInsufficientPrivilege):
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin privileges required", err)
	case errors.Is(err, auth.ErrSelfModificationForbidden):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Cannot "+string(effect)+" yourself", err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
	}
}
