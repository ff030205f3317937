package domain

import "time"

// AdoptionApplication is a public request to adopt one animal. It is never
// modified after submission; administrators may only delete it. AnimalID is
// kept even if the animal is later removed from the catalogue.
type AdoptionApplication struct {
	ID                 int64     `json:"id"`
	AnimalID           int64     `json:"animalId"`
	ApplicantName      string    `json:"applicantName" validate:"notblank,max=100"`
	ApplicantLastName  string    `json:"applicantLastName" validate:"notblank,max=100"`
	Email              string    `json:"email" validate:"required,email,max=254"`
	Phone              string    `json:"phone" validate:"required,phone"`
	Address            string    `json:"address" validate:"notblank,max=200"`
	City               string    `json:"city" validate:"notblank,max=100"`
	State              string    `json:"state" validate:"notblank,max=100"`
	ZipCode            string    `json:"zipCode" validate:"notblank,max=20"`
	ReasonForAdoption  string    `json:"reasonForAdoption" validate:"notblank,max=2000"`
	ExperienceWithPets string    `json:"experienceWithPets" validate:"max=2000"`
	HomeType           string    `json:"homeType" validate:"notblank,max=50"`
	WhoLivesInHouse    string    `json:"whoLivesInHouse" validate:"max=1000"`
	AgreeToTerms       bool      `json:"agreeToTerms" validate:"eq=true"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Validate checks the application payload.
func (a *AdoptionApplication) Validate() error {
	if a.AnimalID <= 0 {
		return NewValidationError("animalId", "must be a positive integer", ErrInvalidID)
	}
	return validateStruct(a)
}
