package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/api/middleware"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a non-admin account", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		account := a.register(t, "  Ada@Example.COM ")
		assert.NotZero(t, account.ID)
		assert.Equal(t, "ada@example.com", account.Email)
		assert.False(t, account.IsAdmin)
	})

	t.Run("duplicate email differing only in case", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		a.register(t, "ada@example.com")

		rec := a.do(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email: "ADA@example.com", Name: "Ada", LastName: "Byron", Password: testPassword,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already registered", errorMessage(t, rec))
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email: "ada@example.com", Name: "Ada", LastName: "Lovelace", Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password must be at least 8 characters long", errorMessage(t, rec))
	})

	t.Run("blank name", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email: "ada@example.com", Name: "  ", LastName: "Lovelace", Password: testPassword,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name cannot be empty", errorMessage(t, rec))
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/auth/register", "",
			`{"email":"ada@example.com","name":"Ada","lastName":"L","password":"correct horse","isAdmin":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", errorMessage(t, rec))
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	a.register(t, "ada@example.com")

	t.Run("returns a bearer token", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
			Email: "ADA@example.com", Password: testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[api.LoginResponse](t, rec)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "ada@example.com", resp.User.Email)
		assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), resp.ExpiresAt, time.Minute)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := a.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
			Email: "ada@example.com", Password: "not the password",
		})
		unknown := a.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
			Email: "nobody@example.com", Password: testPassword,
		})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, errorMessage(t, wrong), errorMessage(t, unknown))
	})

	t.Run("missing password", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Email: "ada@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password cannot be empty", errorMessage(t, rec))
	})
}

func TestMe(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	registered := a.register(t, "ada@example.com")
	token := a.login(t, "ada@example.com")

	rec := a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registered.ID, decode[api.AccountResponse](t, rec).ID)
	assert.NotEmpty(t, rec.Header().Get(middleware.TraceHeader))

	rec = a.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", errorMessage(t, rec))

	rec = a.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, rec))
}

// TestAdminBootstrapFlow walks an account from registration to using an
// administrator endpoint.
func TestAdminBootstrapFlow(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)

	account := a.register(t, "ada@example.com")
	token := a.login(t, "ada@example.com")

	rec := a.do(t, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin privileges required", errorMessage(t, rec))

	// The first administrator is promoted out of band. The same token now
	// carries administrator rights because the flag is read per request.
	_, err := a.accountService.Promote(context.Background(), account.ID)
	require.NoError(t, err)

	rec = a.do(t, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dash := decode[api.DashboardResponse](t, rec)
	assert.Equal(t, "Welcome to admin dashboard, Ada!", dash.Message)
	assert.Equal(t, int64(1), dash.Stats.TotalUsers)

	rec = a.do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[api.UsersResponse](t, rec)
	require.Len(t, users.Users, 1)
	assert.True(t, users.Users[0].IsAdmin)
}

func TestAdminSelfProtection(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	selfID, token := a.admin(t, "root@example.com")
	otherID, _ := a.admin(t, "other@example.com")

	rec := a.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/demote", selfID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot demote yourself", errorMessage(t, rec))

	rec = a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", selfID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete yourself", errorMessage(t, rec))

	self, err := a.accounts.GetByID(context.Background(), selfID)
	require.NoError(t, err)
	assert.True(t, self.IsAdmin)

	rec = a.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/demote", otherID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.UserActionResponse](t, rec)
	assert.Equal(t, "Admin privileges removed from other@example.com", resp.Message)
	assert.False(t, resp.User.IsAdmin)

	rec = a.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/demote", otherID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User is not an admin", errorMessage(t, rec))

	rec = a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", otherID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User other@example.com deleted successfully", decode[map[string]string](t, rec)["message"])
}

func TestAdminUsers(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	_, token := a.admin(t, "root@example.com")
	user := a.register(t, "user@example.com")

	rec := a.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/promote", user.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User user@example.com promoted to admin successfully",
		decode[api.UserActionResponse](t, rec).Message)

	rec = a.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/promote", user.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User is already an admin", errorMessage(t, rec))

	rec = a.do(t, http.MethodGet, "/api/admin/users/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))

	rec = a.do(t, http.MethodPatch, "/api/admin/users/999/promote", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodDelete, "/api/admin/users/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/admin/users/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletedAccountTokenIsRejected(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	account := a.register(t, "ada@example.com")
	token := a.login(t, "ada@example.com")

	require.NoError(t, a.accounts.Delete(context.Background(), account.ID))

	rec := a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, rec))
}
