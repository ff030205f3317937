package auth

import (
	"time"
)

// TestSecret is a signing secret of the minimum accepted length for tests.
const TestSecret = "test-jwt-secret-that-is-32-chars-long"

// NewTestJWTService creates a JWT service with an injected clock. It is
// exported for tests in other packages.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) (JWTService, error) {
	return newHMACJWTService(secret, lifetime, timeFunc)
}
