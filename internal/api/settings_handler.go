package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

// SettingsManager reads and changes the shelter profile.
// *service.SettingsService implements it.
type SettingsManager interface {
	Get(ctx context.Context) (*domain.ShelterSettings, error)
	Update(ctx context.Context, patch domain.ShelterSettingsPatch) (*domain.ShelterSettings, error)
	ReplaceLogo(ctx context.Context, file media.File) (*domain.ShelterSettings, error)
}

// SettingsHandler serves the shelter profile.
type SettingsHandler struct {
	settings       SettingsManager
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settings SettingsManager, maxUploadBytes int64, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{
		settings:       settings,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "settings_handler")),
	}
}

// Get godoc
// @Summary Shelter profile
// @Tags settings
// @Produce json
// @Success 200 {object} domain.ShelterSettings
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// Update godoc
// @Summary Update the shelter profile
// @Description Only the fields present in the body are changed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ShelterSettingsPatch true "Fields to change"
// @Success 200 {object} domain.ShelterSettings
// @Failure 400 {object} shared.ErrorResponse
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.ShelterSettingsPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}
	settings, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// ReplaceLogo godoc
// @Summary Replace the shelter logo
// @Description The previous logo is removed from the CDN afterwards.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "Logo image"
// @Success 200 {object} domain.ShelterSettings
// @Failure 400 {object} shared.ErrorResponse
// @Failure 424 {object} shared.ErrorResponse
// @Router /admin/settings/logo [post]
func (h *SettingsHandler) ReplaceLogo(w http.ResponseWriter, r *http.Request) {
	files, closeFiles, err := parseUploadFiles(w, r, "logo", h.maxUploadBytes)
	defer closeFiles()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if len(files) > 1 {
		HandleAPIError(w, r, domain.NewValidationError("logo", "accepts a single file", media.ErrTooManyFiles), "")
		return
	}

	settings, err := h.settings.ReplaceLogo(r.Context(), files[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to replace logo")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}
