package domain

import "time"

// Subscription is a newsletter sign-up.
type Subscription struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email" validate:"required,email,max=100"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the subscription.
func (s *Subscription) Validate() error {
	return validateStruct(s)
}
