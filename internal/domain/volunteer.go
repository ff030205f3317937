package domain

import (
	"slices"
	"strings"
	"time"
)

// VolunteerStatus is the review state of a volunteer registration.
type VolunteerStatus string

// Volunteer statuses. New registrations start pending.
const (
	VolunteerStatusPending  VolunteerStatus = "pending"
	VolunteerStatusAccepted VolunteerStatus = "accepted"
	VolunteerStatusRejected VolunteerStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerStatusPending, VolunteerStatusAccepted, VolunteerStatusRejected:
		return true
	}
	return false
}

// ParseVolunteerStatus converts raw into a VolunteerStatus.
func ParseVolunteerStatus(raw string) (VolunteerStatus, error) {
	s := VolunteerStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", "must be one of: pending accepted rejected", ErrInvalidVolunteerStatus)
	}
	return s, nil
}

// Volunteer is a registration submitted through the public volunteer form.
// Email and phone are each unique across volunteers.
type Volunteer struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name" validate:"notblank,max=100"`
	LastName              string          `json:"lastName" validate:"notblank,max=100"`
	Email                 string          `json:"email" validate:"required,email,max=254"`
	Phone                 string          `json:"phone" validate:"required,phone"`
	Availability          []string        `json:"availability" validate:"required,min=1,dive,notblank"`
	AvailableDays         []string        `json:"availableDays" validate:"required,min=1,dive,notblank"`
	AreasOfInterest       []string        `json:"areasOfInterest" validate:"required,min=1,dive,notblank"`
	WhyVolunteer          string          `json:"whyVolunteer" validate:"notblank,max=2000"`
	SpecialSkills         string          `json:"specialSkills" validate:"max=2000"`
	EmergencyContactName  string          `json:"emergencyContactName" validate:"notblank,max=100"`
	EmergencyContactPhone string          `json:"emergencyContactPhone" validate:"required,phone"`
	PrivacyAgreement      bool            `json:"privacyAgreement" validate:"eq=true"`
	Status                VolunteerStatus `json:"status" validate:"oneof=pending accepted rejected"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// Validate checks the registration.
func (v *Volunteer) Validate() error {
	return validateStruct(v)
}

// SameDetails reports whether v and other carry identical user-editable
// fields. Identity, status and timestamps are ignored.
func (v *Volunteer) SameDetails(other *Volunteer) bool {
	return v.Name == other.Name &&
		v.LastName == other.LastName &&
		v.Email == other.Email &&
		v.Phone == other.Phone &&
		slices.Equal(v.Availability, other.Availability) &&
		slices.Equal(v.AvailableDays, other.AvailableDays) &&
		slices.Equal(v.AreasOfInterest, other.AreasOfInterest) &&
		v.WhyVolunteer == other.WhyVolunteer &&
		v.SpecialSkills == other.SpecialSkills &&
		v.EmergencyContactName == other.EmergencyContactName &&
		v.EmergencyContactPhone == other.EmergencyContactPhone &&
		v.PrivacyAgreement == other.PrivacyAgreement
}
