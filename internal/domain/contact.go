package domain

import "time"

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"notblank,max=100"`
	LastName  string    `json:"lastName" validate:"notblank,max=100"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Subject   string    `json:"subject" validate:"notblank,max=200"`
	Message   string    `json:"message" validate:"notblank,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the message.
func (m *ContactMessage) Validate() error {
	return validateStruct(m)
}
