package media

import (
	"errors"
	"fmt"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// Media host errors.
var (
	// ErrUploadFailed indicates the host rejected or could not complete an upload.
	ErrUploadFailed = errors.New("media upload failed")

	// ErrDeleteFailed indicates the host could not delete an asset.
	ErrDeleteFailed = errors.New("media deletion failed")

	// ErrMediaNotFound indicates the host has no asset with the given public ID.
	ErrMediaNotFound = errors.New("media not found")

	// ErrUnsupportedType indicates a file whose content type is not accepted.
	ErrUnsupportedType = fmt.Errorf("%w: unsupported media type", domain.ErrValidation)

	// ErrTooManyFiles indicates a batch larger than the configured maximum.
	ErrTooManyFiles = fmt.Errorf("%w: too many files", domain.ErrValidation)

	// ErrNoFiles indicates an empty batch.
	ErrNoFiles = fmt.Errorf("%w: no files provided", domain.ErrValidation)
)
