package api

import (
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Password string `json:"password"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func accountToResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		LastName:  a.LastName,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        AccountResponse `json:"user"`
}

// UsersResponse lists accounts.
type UsersResponse struct {
	Users []AccountResponse `json:"users"`
}

// UserActionResponse reports a change to an account.
type UserActionResponse struct {
	Message string          `json:"message"`
	User    AccountResponse `json:"user"`
}

// DashboardStatsResponse holds the record counts on the dashboard.
type DashboardStatsResponse struct {
	TotalUsers           int64 `json:"total_users"`
	TotalAnimals         int64 `json:"total_animals"`
	TotalAdoptions       int64 `json:"total_adoptions"`
	TotalVolunteers      int64 `json:"total_volunteers"`
	TotalContactMessages int64 `json:"total_contact_messages"`
	TotalSubscriptions   int64 `json:"total_subscriptions"`
}

// DashboardResponse is returned by GET /admin/dashboard.
type DashboardResponse struct {
	Message string                 `json:"message"`
	Stats   DashboardStatsResponse `json:"stats"`
}

// AnimalRequest carries the editable attributes of an animal.
type AnimalRequest struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Size             string `json:"size"`
	Breed            string `json:"breed"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	GoodWithKids     bool   `json:"goodWithKids"`
	GoodWithDogs     bool   `json:"goodWithDogs"`
	HomeTrained      bool   `json:"homeTrained"`
	Status           string `json:"status"`
}

func (req AnimalRequest) toDomain() *domain.Animal {
	return &domain.Animal{
		Name:             req.Name,
		Type:             req.Type,
		Age:              req.Age,
		Gender:           req.Gender,
		Size:             req.Size,
		Breed:            req.Breed,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		GoodWithKids:     req.GoodWithKids,
		GoodWithDogs:     req.GoodWithDogs,
		HomeTrained:      req.HomeTrained,
		Status:           domain.AnimalStatus(req.Status),
	}
}

// StatusRequest is the payload of the status update endpoints.
type StatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

// AnimalsResponse lists animals.
type AnimalsResponse struct {
	Animals []*domain.Animal `json:"animals"`
}

// ApplicationRequest is the payload of POST /adopt/{id}. The animal
// comes from the path.
type ApplicationRequest struct {
	ApplicantName      string `json:"applicantName"`
	ApplicantLastName  string `json:"applicantLastName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zipCode"`
	ReasonForAdoption  string `json:"reasonForAdoption"`
	ExperienceWithPets string `json:"experienceWithPets"`
	HomeType           string `json:"homeType"`
	WhoLivesInHouse    string `json:"whoLivesInHouse"`
	AgreeToTerms       bool   `json:"agreeToTerms"`
}

func (req ApplicationRequest) toDomain(animalID int64) *domain.AdoptionApplication {
	return &domain.AdoptionApplication{
		AnimalID:           animalID,
		ApplicantName:      req.ApplicantName,
		ApplicantLastName:  req.ApplicantLastName,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		ReasonForAdoption:  req.ReasonForAdoption,
		ExperienceWithPets: req.ExperienceWithPets,
		HomeType:           req.HomeType,
		WhoLivesInHouse:    req.WhoLivesInHouse,
		AgreeToTerms:       req.AgreeToTerms,
	}
}

// ApplicationSubmittedResponse is returned by POST /adopt/{id}.
type ApplicationSubmittedResponse struct {
	Success     string                      `json:"success"`
	Application *domain.AdoptionApplication `json:"application"`
}

// ApplicationsResponse lists adoption applications.
type ApplicationsResponse struct {
	Applications []*domain.AdoptionApplication `json:"applications"`
}

// VolunteerRequest carries the editable fields of a volunteer registration.
type VolunteerRequest struct {
	Name                  string   `json:"name"`
	LastName              string   `json:"lastName"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone"`
	Availability          []string `json:"availability"`
	AvailableDays         []string `json:"availableDays"`
	AreasOfInterest       []string `json:"areasOfInterest"`
	WhyVolunteer          string   `json:"whyVolunteer"`
	SpecialSkills         string   `json:"specialSkills"`
	EmergencyContactName  string   `json:"emergencyContactName"`
	EmergencyContactPhone string   `json:"emergencyContactPhone"`
	PrivacyAgreement      bool     `json:"privacyAgreement"`
}

func (req VolunteerRequest) toDomain() *domain.Volunteer {
	return &domain.Volunteer{
		Name:                  req.Name,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Availability:          req.Availability,
		AvailableDays:         req.AvailableDays,
		AreasOfInterest:       req.AreasOfInterest,
		WhyVolunteer:          req.WhyVolunteer,
		SpecialSkills:         req.SpecialSkills,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		PrivacyAgreement:      req.PrivacyAgreement,
	}
}

// VolunteerResultResponse is returned when a volunteer registration is
// submitted or changed.
type VolunteerResultResponse struct {
	Success   string            `json:"success"`
	Volunteer *domain.Volunteer `json:"volunteer"`
}

// VolunteersResponse lists volunteer registrations.
type VolunteersResponse struct {
	Volunteers []*domain.Volunteer `json:"volunteers"`
}

// ContactRequest is the payload of POST /contact.
type ContactRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// ContactReceivedResponse is returned by POST /contact.
type ContactReceivedResponse struct {
	Status  string                 `json:"status"`
	Message *domain.ContactMessage `json:"message"`
}

// MessagesResponse lists contact messages.
type MessagesResponse struct {
	Messages []*domain.ContactMessage `json:"messages"`
}

// SubscribeRequest is the payload of POST /subs.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribedResponse is returned by POST /subs.
type SubscribedResponse struct {
	Success      string               `json:"success"`
	Subscription *domain.Subscription `json:"subscription"`
}

// SubscriptionsResponse lists subscriptions.
type SubscriptionsResponse struct {
	Subscriptions []*domain.Subscription `json:"subscriptions"`
}

// MediaDeleteRequest is the payload of DELETE /admin/media.
type MediaDeleteRequest struct {
	PublicID     string `json:"public_id" validate:"notblank"`
	ResourceType string `json:"resource_type"`
}

// UploadResult reports one file of a batch upload.
type UploadResult struct {
	Filename string        `json:"filename"`
	Media    *domain.Media `json:"media,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// UploadResultsResponse is returned by the batch upload endpoints.
type UploadResultsResponse struct {
	Uploaded int            `json:"uploaded"`
	Failed   int            `json:"failed"`
	Results  []UploadResult `json:"results"`
}

func resultsToResponse(results []media.Result) UploadResultsResponse {
	resp := UploadResultsResponse{Results: make([]UploadResult, len(results))}
	for i, r := range results {
		resp.Results[i] = UploadResult{Filename: r.Filename, Media: r.Media}
		if r.Err != nil {
			resp.Results[i].Error = GetSafeErrorMessage(r.Err)
			resp.Failed++
			continue
		}
		resp.Uploaded++
	}
	return resp
}
