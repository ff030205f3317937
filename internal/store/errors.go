package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity because
	// of a check, not-null or foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when a transaction lost a race with a concurrent
	// one (serialization failure or deadlock) and may be retried.
	ErrConflict = errors.New("concurrent update conflict")

	// Entity-specific "not found" errors

	ErrAccountNotFound        = fmt.Errorf("%w: account", ErrNotFound)
	ErrAnimalNotFound         = fmt.Errorf("%w: animal", ErrNotFound)
	ErrApplicationNotFound    = fmt.Errorf("%w: adoption application", ErrNotFound)
	ErrVolunteerNotFound      = fmt.Errorf("%w: volunteer", ErrNotFound)
	ErrContactMessageNotFound = fmt.Errorf("%w: contact message", ErrNotFound)
	ErrSubscriptionNotFound   = fmt.Errorf("%w: subscription", ErrNotFound)
	ErrAnimalMediaNotFound    = fmt.Errorf("%w: animal media", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that the email is already registered for the
	// kind of record being created (account, volunteer or subscription).
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPhoneExists indicates that a volunteer with the phone number exists.
	ErrPhoneExists = fmt.Errorf("%w: phone", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
