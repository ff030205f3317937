package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Authentication
	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMalformedToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrUnknownAccount):
		return http.StatusUnauthorized

	// Authorization
	case errors.Is(err, auth.ErrInsufficientPrivilege):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrSelfModificationForbidden):
		return http.StatusBadRequest

	// Lookups
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, media.ErrMediaNotFound):
		return http.StatusNotFound

	// Conflicts
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrAnimalUnavailable):
		return http.StatusConflict

	// Media host
	case errors.Is(err, media.ErrUploadFailed),
		errors.Is(err, media.ErrDeleteFailed):
		return http.StatusFailedDependency

	// Bad input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Validation
// messages are built from field names and fixed text, so they are passed
// through; everything unexpected gets a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Authentication required"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMalformedToken),
		errors.Is(err, auth.ErrUnknownAccount):
		return "Invalid token"
	case errors.Is(err, auth.ErrInsufficientPrivilege):
		return "Admin privileges required"
	case errors.Is(err, auth.ErrSelfModificationForbidden):
		return "Cannot modify your own account"

	case errors.Is(err, store.ErrAccountNotFound):
		return "User not found"
	case errors.Is(err, store.ErrAnimalMediaNotFound):
		return "Media not found on this animal"
	case errors.Is(err, store.ErrAnimalNotFound):
		return "Animal not found"
	case errors.Is(err, store.ErrApplicationNotFound):
		return "Adoption application not found"
	case errors.Is(err, store.ErrVolunteerNotFound):
		return "Volunteer not found"
	case errors.Is(err, store.ErrContactMessageNotFound):
		return "Contact message not found"
	case errors.Is(err, store.ErrSubscriptionNotFound):
		return "Subscription not found"
	case errors.Is(err, media.ErrMediaNotFound):
		return "Media not found or already deleted"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrPhoneExists):
		return "Phone number already registered"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, service.ErrAnimalUnavailable):
		return "Animal is not available for adoption"

	case errors.Is(err, media.ErrUploadFailed):
		return "Media upload failed"
	case errors.Is(err, media.ErrDeleteFailed):
		return "Media deletion failed"

	case errors.Is(err, domain.ErrPasswordTooShort):
		return fmt.Sprintf("password must be at least %d characters long", domain.MinPasswordLength)
	case errors.Is(err, domain.ErrPasswordTooLong):
		return fmt.Sprintf("password must be at most %d bytes long", domain.MaxPasswordBytes)
	case errors.Is(err, service.ErrAlreadyAdmin):
		return "User is already an admin"
	case errors.Is(err, service.ErrNotAdmin):
		return "User is not an admin"
	case errors.Is(err, media.ErrTooManyFiles):
		return "Too many files in one upload"
	case errors.Is(err, media.ErrNoFiles):
		return "No files provided"
	case errors.Is(err, media.ErrUnsupportedType) && !errors.As(err, &vErr):
		return "Invalid file type. Allowed: images (jpg, png, gif, webp) and videos (mp4, mov, avi)"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"
	case errors.As(err, &vErr):
		return SanitizeValidationError(vErr)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError renders a field error as "<field> <message>".
func SanitizeValidationError(vErr *domain.ValidationError) string {
	if vErr == nil || vErr.Message == "" {
		return "Validation error"
	}
	return vErr.Error()
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for unexpected (5xx) errors when it is set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
