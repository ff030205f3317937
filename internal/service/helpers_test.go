package service_test

import (
	"strings"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

func newAnimal(name string) *domain.Animal {
	return &domain.Animal{
		Name:   name,
		Type:   "dog",
		Age:    3,
		Gender: "female",
		Size:   "medium",
		Breed:  "beagle",
	}
}

func newApplication(animalID int64) *domain.AdoptionApplication {
	return &domain.AdoptionApplication{
		AnimalID:          animalID,
		ApplicantName:     "Grace",
		ApplicantLastName: "Hopper",
		Email:             "Grace@Example.com",
		Phone:             "+1 415 555 2671",
		Address:           "1 Harbor Way",
		City:              "Arlington",
		State:             "VA",
		ZipCode:           "22201",
		ReasonForAdoption: "Big yard, lots of time",
		HomeType:          "house",
		AgreeToTerms:      true,
	}
}

func newVolunteer(email, phone string) *domain.Volunteer {
	return &domain.Volunteer{
		Name:                  "Alan",
		LastName:              "Turing",
		Email:                 email,
		Phone:                 phone,
		Availability:          []string{"mornings"},
		AvailableDays:         []string{"saturday"},
		AreasOfInterest:       []string{"dog walking"},
		WhyVolunteer:          "I like dogs",
		EmergencyContactName:  "Joan Clarke",
		EmergencyContactPhone: "+1 415 555 0000",
		PrivacyAgreement:      true,
	}
}

func imageFile(name string) media.File {
	return media.File{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        4,
		Content:     strings.NewReader("jpeg"),
	}
}
