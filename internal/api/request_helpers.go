package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// getAccountFromContext returns the account stored by the auth middleware.
func getAccountFromContext(r *http.Request) (*domain.Account, bool) {
	return shared.AccountFromContext(r.Context())
}

// decodeAndValidate decodes the JSON body into v and validates it, writing
// the error response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// parseUploadFiles reads the parts named field from a multipart body, at most
// maxBytes in total. The returned closer must be called once the files have
// been consumed.
func parseUploadFiles(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) ([]media.File, func(), error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, func() {}, domain.NewValidationError(field, "upload is too large", domain.ErrValidation)
		}
		return nil, func() {}, domain.NewValidationError(field, "must be sent as multipart/form-data", domain.ErrValidation)
	}

	var (
		headers = r.MultipartForm.File[field]
		opened  []multipart.File
		files   = make([]media.File, 0, len(headers))
	)
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}
	if len(headers) == 0 {
		return nil, closeAll, media.ErrNoFiles
	}

	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, domain.NewValidationError(field, "could not be read", domain.ErrValidation)
		}
		opened = append(opened, f)
		files = append(files, media.File{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
			Content:     f,
		})
	}
	return files, closeAll, nil
}
