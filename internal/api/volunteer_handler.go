package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

// VolunteerManager handles volunteer registrations.
// *service.VolunteerService implements it.
type VolunteerManager interface {
	Register(ctx context.Context, v *domain.Volunteer) (*domain.Volunteer, error)
	Get(ctx context.Context, id int64) (*domain.Volunteer, error)
	List(ctx context.Context, status domain.VolunteerStatus) ([]*domain.Volunteer, error)
	Update(ctx context.Context, id int64, v *domain.Volunteer) (*domain.Volunteer, bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VolunteerStatus) error
	Delete(ctx context.Context, id int64) error
}

// VolunteerHandler serves the volunteer form and its review.
type VolunteerHandler struct {
	volunteers VolunteerManager
	logger     *slog.Logger
}

// NewVolunteerHandler creates a VolunteerHandler.
func NewVolunteerHandler(volunteers VolunteerManager, logger *slog.Logger) *VolunteerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VolunteerHandler{
		volunteers: volunteers,
		logger:     logger.With(slog.String("component", "volunteer_handler")),
	}
}

// Register godoc
// @Summary Submit the volunteer form
// @Description Email and phone must not be registered already. Phones are stored in E.164.
// @Tags volunteers
// @Accept json
// @Produce json
// @Param payload body VolunteerRequest true "Volunteer details"
// @Success 201 {object} VolunteerResultResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 409 {object} shared.ErrorResponse "Email or phone already registered"
// @Router /volunteers [post]
func (h *VolunteerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req VolunteerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := h.volunteers.Register(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit volunteer form")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, VolunteerResultResponse{
		Success:   "Volunteer form successfully submitted",
		Volunteer: v,
	})
}

// List godoc
// @Summary List volunteer registrations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, accepted or rejected"
// @Success 200 {object} VolunteersResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /admin/volunteers [get]
func (h *VolunteerHandler) List(w http.ResponseWriter, r *http.Request) {
	var status domain.VolunteerStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		parsed, err := domain.ParseVolunteerStatus(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		status = parsed
	}
	vs, err := h.volunteers.List(r.Context(), status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list volunteers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, VolunteersResponse{Volunteers: vs})
}

// Get godoc
// @Summary Get a volunteer registration
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Volunteer ID"
// @Success 200 {object} domain.Volunteer
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/volunteers/{id} [get]
func (h *VolunteerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	v, err := h.volunteers.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get volunteer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}

// Update godoc
// @Summary Replace a volunteer registration
// @Description Status is kept. Reports "No changes detected" when the details are identical.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Volunteer ID"
// @Param payload body VolunteerRequest true "Volunteer details"
// @Success 200 {object} VolunteerResultResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 409 {object} shared.ErrorResponse
// @Router /admin/volunteers/{id} [put]
func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req VolunteerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, changed, err := h.volunteers.Update(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update volunteer")
		return
	}
	if !changed {
		shared.RespondWithMessage(w, r, http.StatusOK, "No changes detected")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, VolunteerResultResponse{
		Success:   "Volunteer updated successfully",
		Volunteer: v,
	})
}

// UpdateStatus godoc
// @Summary Review a volunteer registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Volunteer ID"
// @Param payload body StatusRequest true "pending, accepted or rejected"
// @Success 200 {object} domain.Volunteer
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/volunteers/{id}/status [patch]
func (h *VolunteerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status, err := domain.ParseVolunteerStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.volunteers.UpdateStatus(r.Context(), id, status); err != nil {
		HandleAPIError(w, r, err, "Failed to update volunteer status")
		return
	}
	v, err := h.volunteers.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get volunteer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}

// Delete godoc
// @Summary Delete a volunteer registration
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Volunteer ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/volunteers/{id} [delete]
func (h *VolunteerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.volunteers.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete volunteer")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Volunteer deleted successfully")
}
