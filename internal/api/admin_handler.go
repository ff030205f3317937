package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

// AccountManager administers accounts. *service.AccountService implements it.
type AccountManager interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	Promote(ctx context.Context, id int64) (*domain.Account, error)
	Demote(ctx context.Context, id int64) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// DashboardBuilder summarizes the stored records.
// *service.DashboardService implements it.
type DashboardBuilder interface {
	Summary(ctx context.Context, admin *domain.Account) (*service.Dashboard, error)
}

// AdminHandler serves the dashboard and account administration.
type AdminHandler struct {
	accounts  AccountManager
	dashboard DashboardBuilder
	logger    *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(accounts AccountManager, dashboard DashboardBuilder, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		accounts:  accounts,
		dashboard: dashboard,
		logger:    logger.With(slog.String("component", "admin_handler")),
	}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	admin, ok := getAccountFromContext(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingCredentials, "")
		return
	}
	d, err := h.dashboard.Summary(r.Context(), admin)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build dashboard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DashboardResponse{
		Message: d.Greeting,
		Stats: DashboardStatsResponse{
			TotalUsers:           d.Stats.Users,
			TotalAnimals:         d.Stats.Animals,
			TotalAdoptions:       d.Stats.Adoptions,
			TotalVolunteers:      d.Stats.Volunteers,
			TotalContactMessages: d.Stats.Messages,
			TotalSubscriptions:   d.Stats.Subscriptions,
		},
	})
}

// ListUsers godoc
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsersResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	resp := UsersResponse{Users: make([]AccountResponse, 0, len(accounts))}
	for _, a := range accounts {
		resp.Users = append(resp.Users, accountToResponse(a))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetUser godoc
// @Summary Get an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} AccountResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// PromoteUser godoc
// @Summary Grant administrator rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} UserActionResponse
// @Failure 400 {object} shared.ErrorResponse "User is already an admin"
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/users/{id}/promote [patch]
func (h *AdminHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	account, err := h.accounts.Promote(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to promote user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserActionResponse{
		Message: fmt.Sprintf("User %s promoted to admin successfully", account.Email),
		User:    accountToResponse(account),
	})
}

// DemoteUser godoc
// @Summary Revoke administrator rights
// @Description Administrators cannot demote themselves.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} UserActionResponse
// @Failure 400 {object} shared.ErrorResponse "User is not an admin / Cannot demote yourself"
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/users/{id}/demote [patch]
func (h *AdminHandler) DemoteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	account, err := h.accounts.Demote(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to demote user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserActionResponse{
		Message: fmt.Sprintf("Admin privileges removed from %s", account.Email),
		User:    accountToResponse(account),
	})
}

// DeleteUser godoc
// @Summary Delete an account
// @Description Administrators cannot delete themselves.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 400 {object} shared.ErrorResponse "Cannot delete yourself"
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	if err := h.accounts.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, fmt.Sprintf("User %s deleted successfully", account.Email))
}
