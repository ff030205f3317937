package domain

import (
	"strings"
	"time"
)

// Password bounds. bcrypt ignores everything past 72 bytes, so longer
// passwords are rejected rather than silently truncated.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// Account is a registered user of the platform. Administrators manage the
// animal catalogue and review submitted forms.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email,max=254"`
	Name         string    `json:"name" validate:"notblank,max=100"`
	LastName     string    `json:"lastName" validate:"notblank,max=100"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAccount builds a non-admin account with a normalized email. The caller
// sets PasswordHash before persisting it.
func NewAccount(email, name, lastName string) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		LastName:  strings.TrimSpace(lastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the account's profile fields.
func (a *Account) Validate() error {
	return validateStruct(a)
}

// ValidatePassword enforces the plaintext password policy.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
