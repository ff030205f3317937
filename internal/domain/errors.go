package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every validation failure in this package.
// Callers test for it with errors.Is.
var ErrValidation = errors.New("validation failed")

// Specific validation failures, all wrapping ErrValidation.
var (
	ErrInvalidID              = fmt.Errorf("%w: invalid ID", ErrValidation)
	ErrEmptyField             = fmt.Errorf("%w: field cannot be empty", ErrValidation)
	ErrInvalidEmail           = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrInvalidPhone           = fmt.Errorf("%w: invalid phone number", ErrValidation)
	ErrPasswordTooShort       = fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	ErrPasswordTooLong        = fmt.Errorf("%w: password must be at most %d bytes long", ErrValidation, MaxPasswordBytes)
	ErrInvalidAnimalStatus    = fmt.Errorf("%w: invalid animal status", ErrValidation)
	ErrInvalidVolunteerStatus = fmt.Errorf("%w: invalid volunteer status", ErrValidation)
	ErrAgreementRequired      = fmt.Errorf("%w: agreement must be accepted", ErrValidation)
	ErrInvalidMedia           = fmt.Errorf("%w: invalid media reference", ErrValidation)
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err should be one
// of the sentinels above; ErrValidation is used when it is nil.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
