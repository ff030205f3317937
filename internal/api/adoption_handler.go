package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

// AdoptionManager handles adoption applications.
// *service.AdoptionService implements it.
type AdoptionManager interface {
	Submit(ctx context.Context, app *domain.AdoptionApplication) (*domain.AdoptionApplication, error)
	Get(ctx context.Context, id int64) (*domain.AdoptionApplication, error)
	List(ctx context.Context, animalID int64) ([]*domain.AdoptionApplication, error)
	Delete(ctx context.Context, id int64) error
}

// AdoptionHandler serves adoption applications.
type AdoptionHandler struct {
	adoptions AdoptionManager
	logger    *slog.Logger
}

// NewAdoptionHandler creates an AdoptionHandler.
func NewAdoptionHandler(adoptions AdoptionManager, logger *slog.Logger) *AdoptionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdoptionHandler{
		adoptions: adoptions,
		logger:    logger.With(slog.String("component", "adoption_handler")),
	}
}

// Submit godoc
// @Summary Apply to adopt an animal
// @Description Marks the animal pending and records the application. Adopted animals refuse applications.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param id path int true "Animal ID"
// @Param payload body ApplicationRequest true "Applicant details"
// @Success 201 {object} ApplicationSubmittedResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse "Animal not found"
// @Failure 409 {object} shared.ErrorResponse "Animal is not available for adoption"
// @Router /adopt/{id} [post]
func (h *AdoptionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// The same path parameter names the application on GET.
	animalID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req ApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.adoptions.Submit(r.Context(), req.toDomain(animalID))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit adoption application")
		return
	}

	log.Info("adoption application received",
		slog.Int64("application_id", app.ID),
		slog.Int64("animal_id", animalID))
	shared.RespondWithJSON(w, r, http.StatusCreated, ApplicationSubmittedResponse{
		Success:     "Adoption application submitted successfully",
		Application: app,
	})
}

// Get godoc
// @Summary Get an adoption application
// @Tags adoptions
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} domain.AdoptionApplication
// @Failure 404 {object} shared.ErrorResponse
// @Router /adopt/{id} [get]
func (h *AdoptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	app, err := h.adoptions.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get adoption application")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, app)
}

// List godoc
// @Summary List adoption applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param animalId query int false "Only applications for this animal"
// @Success 200 {object} ApplicationsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /admin/adoptions [get]
func (h *AdoptionHandler) List(w http.ResponseWriter, r *http.Request) {
	var animalID int64
	if raw := strings.TrimSpace(r.URL.Query().Get("animalId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			HandleAPIError(w, r, domain.NewValidationError("animalId", "must be a positive integer", domain.ErrInvalidID), "")
			return
		}
		animalID = id
	}

	apps, err := h.adoptions.List(r.Context(), animalID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list adoption applications")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ApplicationsResponse{Applications: apps})
}

// Delete godoc
// @Summary Delete an adoption application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/adoptions/{id} [delete]
func (h *AdoptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.adoptions.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete adoption application")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Adoption application deleted successfully")
}
