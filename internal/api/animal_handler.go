package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// AnimalManager is the animal catalogue. *service.AnimalService implements it.
type AnimalManager interface {
	List(ctx context.Context, filter store.AnimalFilter) ([]*domain.Animal, error)
	Get(ctx context.Context, id int64) (*domain.Animal, error)
	Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error)
	Update(ctx context.Context, id int64, animal *domain.Animal) (*domain.Animal, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AnimalStatus) error
	Delete(ctx context.Context, id int64) error
	AttachMedia(ctx context.Context, id int64, files []media.File) ([]media.Result, error)
	RemoveMedia(ctx context.Context, id int64, publicID string) error
}

// AnimalHandler serves the public catalogue and its admin management.
type AnimalHandler struct {
	animals        AnimalManager
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAnimalHandler creates an AnimalHandler. maxUploadBytes bounds a media
// upload request; zero disables the limit.
func NewAnimalHandler(animals AnimalManager, maxUploadBytes int64, logger *slog.Logger) *AnimalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnimalHandler{
		animals:        animals,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "animal_handler")),
	}
}

// ListAnimals godoc
// @Summary List animals
// @Tags animals
// @Produce json
// @Param status query string false "available, pending or adopted"
// @Param type query string false "Animal type, e.g. dog"
// @Success 200 {object} AnimalsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /animals [get]
func (h *AnimalHandler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	var filter store.AnimalFilter
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := domain.ParseAnimalStatus(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		filter.Status = status
	}
	filter.Type = strings.TrimSpace(r.URL.Query().Get("type"))

	animals, err := h.animals.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list animals")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AnimalsResponse{Animals: animals})
}

// GetAnimal godoc
// @Summary Get an animal
// @Tags animals
// @Produce json
// @Param id path int true "Animal ID"
// @Success 200 {object} domain.Animal
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /animals/{id} [get]
func (h *AnimalHandler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	animal, err := h.animals.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get animal")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, animal)
}

// CreateAnimal godoc
// @Summary Create an animal
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body AnimalRequest true "Animal attributes; status defaults to available"
// @Success 201 {object} domain.Animal
// @Failure 400 {object} shared.ErrorResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Router /admin/animals [post]
func (h *AnimalHandler) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	var req AnimalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	animal, err := h.animals.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create animal")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, animal)
}

// UpdateAnimal godoc
// @Summary Replace an animal's attributes
// @Description Overwrites every attribute. Media is managed separately; an empty status keeps the current one.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Animal ID"
// @Param payload body AnimalRequest true "Animal attributes"
// @Success 200 {object} domain.Animal
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/animals/{id} [put]
func (h *AnimalHandler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req AnimalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	animal, err := h.animals.Update(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update animal")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, animal)
}

// UpdateAnimalStatus godoc
// @Summary Set an animal's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Animal ID"
// @Param payload body StatusRequest true "available, pending or adopted"
// @Success 200 {object} domain.Animal
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/animals/{id}/status [patch]
func (h *AnimalHandler) UpdateAnimalStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status, err := domain.ParseAnimalStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.animals.UpdateStatus(r.Context(), id, status); err != nil {
		HandleAPIError(w, r, err, "Failed to update animal status")
		return
	}
	animal, err := h.animals.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get animal")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, animal)
}

// DeleteAnimal godoc
// @Summary Delete an animal
// @Description Adoption applications for the animal are kept.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Animal ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/animals/{id} [delete]
func (h *AnimalHandler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.animals.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete animal")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Animal deleted successfully")
}

// AttachMedia godoc
// @Summary Upload media for an animal
// @Description Uploads each file and appends the successful ones to the animal's media list.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Animal ID"
// @Param files formData file true "Images or videos"
// @Success 201 {object} UploadResultsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 424 {object} shared.ErrorResponse
// @Router /admin/animals/{id}/media [post]
func (h *AnimalHandler) AttachMedia(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	files, closeFiles, err := parseUploadFiles(w, r, "files", h.maxUploadBytes)
	defer closeFiles()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	results, err := h.animals.AttachMedia(r.Context(), id, files)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to attach media")
		return
	}

	resp := resultsToResponse(results)
	status := http.StatusCreated
	if resp.Uploaded == 0 {
		// Nothing was stored; report the host failure rather than success.
		status = http.StatusFailedDependency
	}
	shared.RespondWithJSON(w, r, status, resp)
}

// RemoveMedia godoc
// @Summary Remove media from an animal
// @Description Drops the reference from the animal, then deletes the asset from the CDN. Public IDs may contain slashes.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Animal ID"
// @Param publicId path string true "CDN public ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 424 {object} shared.ErrorResponse
// @Router /admin/animals/{id}/media/{publicId} [delete]
func (h *AnimalHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	publicID, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || strings.TrimSpace(publicID) == "" {
		HandleAPIError(w, r, domain.NewValidationError("publicId", "is required", domain.ErrInvalidMedia), "")
		return
	}

	if err := h.animals.RemoveMedia(r.Context(), id, publicID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove media")
		return
	}
	log.Info("animal media removed", slog.Int64("animal_id", id), slog.String("public_id", publicID))
	shared.RespondWithMessage(w, r, http.StatusOK, "Media deleted successfully")
}
