package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// Service-level sentinel errors. The API layer maps them to status codes.
var (
	// ErrAnimalUnavailable indicates the animal no longer accepts adoption
	// applications, either because it was adopted or because concurrent
	// submissions kept conflicting.
	ErrAnimalUnavailable = errors.New("animal is not available for adoption")

	// ErrAlreadyAdmin indicates a promotion of an account that is already an
	// administrator.
	ErrAlreadyAdmin = fmt.Errorf("%w: user is already an admin", domain.ErrValidation)

	// ErrNotAdmin indicates a demotion of an account that is not an
	// administrator.
	ErrNotAdmin = fmt.Errorf("%w: user is not an admin", domain.ErrValidation)
)
