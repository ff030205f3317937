package mocks

import (
	"errors"
	"strings"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

const plainPrefix = "plain:"

// PasswordHasher implements auth.PasswordHasher without bcrypt's cost so
// tests stay fast. Hashes are the password with a fixed prefix.
type PasswordHasher struct {
	mu           sync.Mutex
	CompareCalls int
	HashErr      error
}

var _ auth.PasswordHasher = (*PasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return plainPrefix + password, nil
}

// Compare implements auth.PasswordHasher.
func (h *PasswordHasher) Compare(hashedPassword, password string) error {
	h.mu.Lock()
	h.CompareCalls++
	h.mu.Unlock()
	if !strings.HasPrefix(hashedPassword, plainPrefix) || hashedPassword[len(plainPrefix):] != password {
		return errors.New("password mismatch")
	}
	return nil
}
