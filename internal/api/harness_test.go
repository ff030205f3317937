package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/api/middleware"
	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/mocks"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/service/auth"
)

const testPassword = "correct horse battery"

// testAPI is the full API wired to in-memory stores.
type testAPI struct {
	router http.Handler

	accounts   *mocks.AccountStore
	animals    *mocks.AnimalStore
	adoptions  *mocks.AdoptionStore
	volunteers *mocks.VolunteerStore
	contact    *mocks.ContactStore
	subs       *mocks.SubscriptionStore
	settings   *mocks.SettingsStore
	host       *mocks.MediaHost

	accountService *service.AccountService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	a := &testAPI{
		accounts:   mocks.NewAccountStore(),
		animals:    mocks.NewAnimalStore(),
		adoptions:  mocks.NewAdoptionStore(),
		volunteers: mocks.NewVolunteerStore(),
		contact:    mocks.NewContactStore(),
		subs:       mocks.NewSubscriptionStore(),
		settings:   mocks.NewSettingsStore(),
		host:       mocks.NewMediaHost(),
	}
	tx := &mocks.SerialTransactor{}

	tokens, err := auth.NewTestJWTService(auth.TestSecret, 0, nil)
	require.NoError(t, err)
	credentials, err := auth.NewCredentialService(a.accounts, &mocks.PasswordHasher{}, nil)
	require.NoError(t, err)
	guard, err := auth.NewGuard(tokens, a.accounts, nil)
	require.NoError(t, err)

	a.accountService, err = service.NewAccountService(a.accounts, tx, nil)
	require.NoError(t, err)
	dashboard, err := service.NewDashboardService(service.DashboardSources{
		Accounts:      a.accounts,
		Animals:       a.animals,
		Applications:  a.adoptions,
		Volunteers:    a.volunteers,
		Messages:      a.contact,
		Subscriptions: a.subs,
	})
	require.NoError(t, err)
	animalService, err := service.NewAnimalService(a.animals, a.host, tx, 3, nil)
	require.NoError(t, err)
	adoptionService, err := service.NewAdoptionService(a.animals, a.adoptions, tx, nil)
	require.NoError(t, err)
	volunteerService, err := service.NewVolunteerService(a.volunteers, tx, nil)
	require.NoError(t, err)
	contactService, err := service.NewContactService(a.contact, nil)
	require.NoError(t, err)
	subscriptionService, err := service.NewSubscriptionService(a.subs, nil)
	require.NoError(t, err)
	settingsService, err := service.NewSettingsService(a.settings, a.host, tx, nil)
	require.NoError(t, err)
	mediaService, err := service.NewMediaService(a.host, 3, nil)
	require.NoError(t, err)

	handlers := api.Handlers{
		Auth:      api.NewAuthHandler(credentials, tokens, nil),
		Animals:   api.NewAnimalHandler(animalService, 1<<20, nil),
		Adoptions: api.NewAdoptionHandler(adoptionService, nil),
		Volunteer: api.NewVolunteerHandler(volunteerService, nil),
		Inbox:     api.NewInboxHandler(contactService, subscriptionService, nil),
		Settings:  api.NewSettingsHandler(settingsService, 1<<20, nil),
		Media:     api.NewMediaHandler(mediaService, 1<<20, nil),
		Admin:     api.NewAdminHandler(a.accountService, dashboard, nil),
	}

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(nil))
	r.Mount("/api", api.NewRouter(handlers, middleware.NewAuthMiddleware(guard)))
	a.router = r
	return a
}

// do sends a JSON request. body is marshalled unless it is already a string.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	filename    string
	contentType string
	content     string
}

// doMultipart sends the files as parts named field.
func (a *testAPI) doMultipart(t *testing.T, path, token, field string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[shared.ErrorResponse](t, rec).Error
}

func (a *testAPI) register(t *testing.T, email string) api.AccountResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
		Email:    email,
		Name:     "Ada",
		LastName: "Lovelace",
		Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.AccountResponse](t, rec)
}

func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[api.LoginResponse](t, rec).AccessToken
}

// admin registers an account, promotes it out of band and logs in.
func (a *testAPI) admin(t *testing.T, email string) (int64, string) {
	t.Helper()
	account := a.register(t, email)
	_, err := a.accountService.Promote(context.Background(), account.ID)
	require.NoError(t, err)
	return account.ID, a.login(t, email)
}

func (a *testAPI) seedAnimal(t *testing.T, name string, status domain.AnimalStatus) int64 {
	t.Helper()
	animal := &domain.Animal{
		Name:   name,
		Type:   "dog",
		Age:    2,
		Gender: "male",
		Size:   "large",
		Status: status,
		Media:  []domain.Media{},
	}
	require.NoError(t, a.animals.Create(context.Background(), animal))
	return animal.ID
}

func animalRequest(name string) api.AnimalRequest {
	return api.AnimalRequest{
		Name:   name,
		Type:   "cat",
		Age:    4,
		Gender: "female",
		Size:   "small",
		Breed:  "tabby",
	}
}

func applicationRequest() api.ApplicationRequest {
	return api.ApplicationRequest{
		ApplicantName:     "Grace",
		ApplicantLastName: "Hopper",
		Email:             "grace@example.com",
		Phone:             "+1 415 555 2671",
		Address:           "1 Harbor Way",
		City:              "Arlington",
		State:             "VA",
		ZipCode:           "22201",
		ReasonForAdoption: "Big yard",
		HomeType:          "house",
		AgreeToTerms:      true,
	}
}

func volunteerRequest(email, phone string) api.VolunteerRequest {
	return api.VolunteerRequest{
		Name:                  "Alan",
		LastName:              "Turing",
		Email:                 email,
		Phone:                 phone,
		Availability:          []string{"mornings"},
		AvailableDays:         []string{"saturday"},
		AreasOfInterest:       []string{"dog walking"},
		WhyVolunteer:          "I like dogs",
		EmergencyContactName:  "Joan Clarke",
		EmergencyContactPhone: "+1 415 555 0100",
		PrivacyAgreement:      true,
	}
}
