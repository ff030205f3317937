package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

// MediaManager uploads and deletes standalone assets.
// *service.MediaService implements it.
type MediaManager interface {
	Upload(ctx context.Context, file media.File) (*domain.Media, error)
	UploadMany(ctx context.Context, files []media.File) ([]media.Result, error)
	Delete(ctx context.Context, publicID string, kind domain.MediaKind) error
}

// MediaHandler exposes the media host to administrators.
type MediaHandler struct {
	media          MediaManager
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(manager MediaManager, maxUploadBytes int64, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaHandler{
		media:          manager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "media_handler")),
	}
}

// Upload godoc
// @Summary Upload an image or video
// @Tags media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "jpg, png, gif, webp, mp4, mov or avi"
// @Success 201 {object} domain.Media
// @Failure 400 {object} shared.ErrorResponse
// @Failure 424 {object} shared.ErrorResponse "Upload failed"
// @Router /admin/media/upload [post]
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	files, closeFiles, err := parseUploadFiles(w, r, "file", h.maxUploadBytes)
	defer closeFiles()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if len(files) > 1 {
		HandleAPIError(w, r, domain.NewValidationError("file", "accepts a single file", media.ErrTooManyFiles), "")
		return
	}

	m, err := h.media.Upload(r.Context(), files[0])
	if err != nil {
		HandleAPIError(w, r, err, "Upload failed")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, m)
}

// UploadMultiple godoc
// @Summary Upload several images or videos
// @Description At most 10 files by default. Each file is reported separately.
// @Tags media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Images or videos"
// @Success 201 {object} UploadResultsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /admin/media/upload-multiple [post]
func (h *MediaHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	files, closeFiles, err := parseUploadFiles(w, r, "files", h.maxUploadBytes)
	defer closeFiles()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	results, err := h.media.UploadMany(r.Context(), files)
	if err != nil {
		HandleAPIError(w, r, err, "Upload failed")
		return
	}
	resp := resultsToResponse(results)
	status := http.StatusCreated
	if resp.Uploaded == 0 {
		status = http.StatusFailedDependency
	}
	shared.RespondWithJSON(w, r, status, resp)
}

// Delete godoc
// @Summary Delete an asset from the CDN
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body MediaDeleteRequest true "public_id and resource_type (image by default)"
// @Success 200 {object} shared.MessageResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse "Media not found or already deleted"
// @Failure 424 {object} shared.ErrorResponse "Delete failed"
// @Router /admin/media [delete]
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req MediaDeleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	kind := domain.MediaKindImage
	if req.ResourceType != "" {
		parsed, err := domain.ParseMediaKind(req.ResourceType)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		kind = parsed
	}

	if err := h.media.Delete(r.Context(), req.PublicID, kind); err != nil {
		HandleAPIError(w, r, err, "Delete failed")
		return
	}
	log.Info("media deleted", slog.String("public_id", req.PublicID))
	shared.RespondWithMessage(w, r, http.StatusOK, "Media deleted successfully")
}
