package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

// TokenTypeBearer is the token_type reported on login.
const TokenTypeBearer = "bearer"

// Credentials registers accounts and checks email/password pairs.
// *auth.CredentialService implements it.
type Credentials interface {
	Register(ctx context.Context, in auth.RegisterInput) (*domain.Account, error)
	Verify(ctx context.Context, email, password string) (*domain.Account, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(ctx context.Context, account *domain.Account) (string, time.Time, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	credentials Credentials
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(credentials Credentials, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register godoc
// @Summary Register an account
// @Description Creates a non-admin account. Emails are unique, case-insensitively.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Account data"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 409 {object} shared.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.credentials.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		LastName: req.LastName,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(account))
}

// Login godoc
// @Summary Log in
// @Description Exchanges an email and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 401 {object} shared.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.credentials.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(r.Context(), account)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	log.Debug("token issued", slog.Int64("account_id", account.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
		User:        accountToResponse(account),
	})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountResponse
// @Failure 401 {object} shared.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := getAccountFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingCredentials, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}
