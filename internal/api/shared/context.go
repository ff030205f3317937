package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

// ContextKey is the type of the request context keys set by this package.
type ContextKey string

const (
	// AccountContextKey holds the *domain.Account resolved by the auth middleware.
	AccountContextKey ContextKey = "account"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID returns ctx carrying traceID, or a fresh random ID when
// traceID is empty.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "" if there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithAccount returns ctx carrying the authenticated account.
func WithAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, AccountContextKey, account)
}

// AccountFromContext returns the authenticated account, if any.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(AccountContextKey).(*domain.Account)
	return account, ok && account != nil
}
