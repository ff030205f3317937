package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/pawscout-api/internal/config"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// clock is a mutable time source for the token service.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTokenService(t *testing.T, c *clock) auth.JWTService {
	t.Helper()
	svc, err := auth.NewTestJWTService(auth.TestSecret, 0, c.Now)
	require.NoError(t, err)
	return svc
}

func testAccount() *domain.Account {
	return &domain.Account{ID: 42, Email: "ada@example.com", Name: "Ada", LastName: "Lovelace"}
}

func TestNewJWTService(t *testing.T) {
	_, err := auth.NewJWTService(config.AuthConfig{JWTSecret: "too-short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: auth.TestSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: issuedAt}
	svc := newTokenService(t, c)

	token, expiresAt, err := svc.GenerateToken(ctx, testAccount())
	require.NoError(t, err)
	assert.True(t, issuedAt.Add(auth.DefaultTokenLifetime).Equal(expiresAt))

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.True(t, issuedAt.Equal(claims.IssuedAt))
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_LifetimeBoundary(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: issuedAt}
	svc := newTokenService(t, c)

	token, _, err := svc.GenerateToken(ctx, testAccount())
	require.NoError(t, err)

	tests := []struct {
		name    string
		offset  time.Duration
		wantErr error
	}{
		{name: "one_second_before_expiry", offset: 14*24*time.Hour - time.Second},
		{name: "at_expiry", offset: 14 * 24 * time.Hour, wantErr: auth.ErrExpiredToken},
		{name: "one_second_after_expiry", offset: 14*24*time.Hour + time.Second, wantErr: auth.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.now = issuedAt.Add(tt.offset)
			_, err := svc.ValidateToken(ctx, token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: issuedAt}
	svc := newTokenService(t, c)

	token, _, err := svc.GenerateToken(ctx, testAccount())
	require.NoError(t, err)

	otherKey, err := auth.NewTestJWTService("another-secret-that-is-32-chars-long!!", 0, c.Now)
	require.NoError(t, err)
	foreign, _, err := otherKey.GenerateToken(ctx, testAccount())
	require.NoError(t, err)

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(issuedAt.Add(time.Hour))

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: auth.ErrMissingCredentials},
		{name: "garbage", token: "not-a-jwt", wantErr: auth.ErrMalformedToken},
		{name: "tampered_signature", token: tampered, wantErr: auth.ErrMalformedToken},
		{name: "foreign_key", token: foreign, wantErr: auth.ErrMalformedToken},
		{
			name: "alg_none",
			token: sign(jwt.MapClaims{"sub": "ada@example.com", "user_id": 42, "exp": exp.Unix()},
				jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
			wantErr: auth.ErrMalformedToken,
		},
		{
			name: "missing_exp",
			token: sign(jwt.MapClaims{"sub": "ada@example.com", "user_id": 42},
				jwt.SigningMethodHS256, []byte(auth.TestSecret)),
			wantErr: auth.ErrMalformedToken,
		},
		{
			name: "missing_user_id",
			token: sign(jwt.MapClaims{"sub": "ada@example.com", "exp": exp.Unix()},
				jwt.SigningMethodHS256, []byte(auth.TestSecret)),
			wantErr: auth.ErrMalformedToken,
		},
		{
			name: "hs512",
			token: sign(jwt.MapClaims{"sub": "ada@example.com", "user_id": 42, "exp": exp.Unix()},
				jwt.SigningMethodHS512, []byte(auth.TestSecret)),
			wantErr: auth.ErrMalformedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateToken_RequiresPersistedAccount(t *testing.T) {
	svc := newTokenService(t, &clock{now: issuedAt})

	_, _, err := svc.GenerateToken(context.Background(), &domain.Account{Email: "new@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
