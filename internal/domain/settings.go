package domain

import "time"

// DefaultShelterName is used until an administrator sets one.
const DefaultShelterName = "PawScout Shelter"

// ShelterSettings holds the public profile of the shelter. There is exactly
// one settings record.
type ShelterSettings struct {
	ShelterName    string    `json:"shelterName" validate:"notblank,max=100"`
	ShelterEmail   string    `json:"shelterEmail" validate:"omitempty,email,max=254"`
	ShelterPhone   string    `json:"shelterPhone" validate:"omitempty,phone"`
	ShelterAddress string    `json:"shelterAddress" validate:"max=200"`
	City           string    `json:"city" validate:"max=100"`
	State          string    `json:"state" validate:"max=100"`
	ZipCode        string    `json:"zipCode" validate:"max=20"`
	Logo           *Media    `json:"logo,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultShelterSettings returns the settings served before any update.
func DefaultShelterSettings() *ShelterSettings {
	return &ShelterSettings{ShelterName: DefaultShelterName}
}

// Validate checks the settings.
func (s *ShelterSettings) Validate() error {
	return validateStruct(s)
}

// ShelterSettingsPatch carries a partial settings update. Nil fields are left
// unchanged.
type ShelterSettingsPatch struct {
	ShelterName    *string `json:"shelterName"`
	ShelterEmail   *string `json:"shelterEmail"`
	ShelterPhone   *string `json:"shelterPhone"`
	ShelterAddress *string `json:"shelterAddress"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	ZipCode        *string `json:"zipCode"`
}

// Apply copies the non-nil fields of p onto s and reports whether anything
// changed.
func (p ShelterSettingsPatch) Apply(s *ShelterSettings) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&s.ShelterName, p.ShelterName)
	set(&s.ShelterEmail, p.ShelterEmail)
	set(&s.ShelterPhone, p.ShelterPhone)
	set(&s.ShelterAddress, p.ShelterAddress)
	set(&s.City, p.City)
	set(&s.State, p.State)
	set(&s.ZipCode, p.ZipCode)
	return changed
}
