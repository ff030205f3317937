package domain

import (
	"strings"
	"time"
)

// AnimalStatus is the adoption state of an animal.
type AnimalStatus string

// Animal statuses. An animal moves to pending when an application is
// submitted for it; administrators may set any status directly.
const (
	AnimalStatusAvailable AnimalStatus = "available"
	AnimalStatusPending   AnimalStatus = "pending"
	AnimalStatusAdopted   AnimalStatus = "adopted"
)

// Valid reports whether s is a known status.
func (s AnimalStatus) Valid() bool {
	switch s {
	case AnimalStatusAvailable, AnimalStatusPending, AnimalStatusAdopted:
		return true
	}
	return false
}

// ParseAnimalStatus converts raw into an AnimalStatus.
func ParseAnimalStatus(raw string) (AnimalStatus, error) {
	s := AnimalStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", "must be one of: available pending adopted", ErrInvalidAnimalStatus)
	}
	return s, nil
}

// Animal is a listing in the adoption catalogue.
type Animal struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name" validate:"notblank,max=100"`
	Type             string       `json:"type" validate:"notblank,max=50"`
	Age              int          `json:"age" validate:"gte=0,lte=100"`
	Gender           string       `json:"gender" validate:"notblank,max=20"`
	Size             string       `json:"size" validate:"notblank,max=20"`
	Breed            string       `json:"breed" validate:"max=100"`
	ShortDescription string       `json:"shortDescription" validate:"max=500"`
	LongDescription  string       `json:"longDescription" validate:"max=5000"`
	GoodWithKids     bool         `json:"goodWithKids"`
	GoodWithDogs     bool         `json:"goodWithDogs"`
	HomeTrained      bool         `json:"homeTrained"`
	Status           AnimalStatus `json:"status" validate:"oneof=available pending adopted"`
	Media            []Media      `json:"media" validate:"dive"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Validate checks the animal's attributes.
func (a *Animal) Validate() error {
	return validateStruct(a)
}

// AcceptsApplications reports whether an adoption application may still be
// submitted. Pending animals keep accepting applications; adopted ones do not.
func (a *Animal) AcceptsApplications() bool {
	return a.Status != AnimalStatusAdopted
}

// WithoutMedia returns the media list with the entry for publicID removed,
// and whether anything was removed.
func (a *Animal) WithoutMedia(publicID string) ([]Media, bool) {
	out := make([]Media, 0, len(a.Media))
	removed := false
	for _, m := range a.Media {
		if m.PublicID == publicID {
			removed = true
			continue
		}
		out = append(out, m)
	}
	return out, removed
}
