package auth

import "errors"

// Authentication and authorization errors.
var (
	// ErrMissingCredentials indicates a protected operation was called without a token.
	ErrMissingCredentials = errors.New("authentication token is missing")

	// ErrMalformedToken indicates the token is structurally invalid, carries a bad
	// signature or an unexpected algorithm, or lacks a required claim.
	ErrMalformedToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's expiry time has been reached.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrUnknownAccount indicates the token is valid but its account no longer exists.
	ErrUnknownAccount = errors.New("account no longer exists")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInsufficientPrivilege indicates an authenticated caller lacks administrator rights.
	ErrInsufficientPrivilege = errors.New("administrator privileges required")

	// ErrSelfModificationForbidden indicates an administrator tried to demote or
	// delete their own account.
	ErrSelfModificationForbidden = errors.New("administrators cannot demote or delete their own account")
)
