package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

func TestVolunteerRegistration(t *testing.T) {
	t.Parallel()

	t.Run("stores a pending registration", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("Alan@Example.com", "+1 (415) 555-2671"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[api.VolunteerResultResponse](t, rec)
		assert.Equal(t, "Volunteer form successfully submitted", resp.Success)
		require.NotNil(t, resp.Volunteer)
		assert.Equal(t, domain.VolunteerStatusPending, resp.Volunteer.Status)
		assert.Equal(t, "alan@example.com", resp.Volunteer.Email)
		assert.Equal(t, "+14155552671", resp.Volunteer.Phone)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		rec := a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("alan@example.com", "+14155552671"))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("ALAN@example.com", "+14155550199"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already registered", errorMessage(t, rec))
	})

	t.Run("duplicate phone in another format", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		rec := a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("alan@example.com", "+14155552671"))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("joan@example.com", "+1 415-555-2671"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Phone number already registered", errorMessage(t, rec))
	})

	t.Run("privacy agreement is required", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		req := volunteerRequest("alan@example.com", "+14155552671")
		req.PrivacyAgreement = false

		rec := a.do(t, http.MethodPost, "/api/volunteers", "", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "privacyAgreement must be accepted", errorMessage(t, rec))
	})

	t.Run("impossible phone", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("alan@example.com", "12"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminVolunteers(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	_, token := a.admin(t, "root@example.com")

	rec := a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("alan@example.com", "+14155552671"))
	require.Equal(t, http.StatusCreated, rec.Code)
	alan := decode[api.VolunteerResultResponse](t, rec).Volunteer
	rec = a.do(t, http.MethodPost, "/api/volunteers", "", volunteerRequest("joan@example.com", "+14155550199"))
	require.Equal(t, http.StatusCreated, rec.Code)
	joan := decode[api.VolunteerResultResponse](t, rec).Volunteer

	path := fmt.Sprintf("/api/admin/volunteers/%d", alan.ID)

	t.Run("requires an administrator", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/api/admin/volunteers", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("identical update reports no changes", func(t *testing.T) {
		rec := a.do(t, http.MethodPut, path, token, volunteerRequest("alan@example.com", "+1 415 555 2671"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "No changes detected", decode[map[string]string](t, rec)["message"])
	})

	t.Run("update", func(t *testing.T) {
		req := volunteerRequest("alan@example.com", "+14155552671")
		req.SpecialSkills = "First aid"
		rec := a.do(t, http.MethodPut, path, token, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[api.VolunteerResultResponse](t, rec)
		assert.Equal(t, "Volunteer updated successfully", resp.Success)
		assert.Equal(t, "First aid", resp.Volunteer.SpecialSkills)
		assert.Equal(t, domain.VolunteerStatusPending, resp.Volunteer.Status)
	})

	t.Run("update onto another volunteer's email", func(t *testing.T) {
		rec := a.do(t, http.MethodPut, path, token, volunteerRequest("joan@example.com", "+14155552671"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already registered", errorMessage(t, rec))
	})

	t.Run("status", func(t *testing.T) {
		rec := a.do(t, http.MethodPatch, path+"/status", token, api.StatusRequest{Status: "accepted"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, domain.VolunteerStatusAccepted, decode[domain.Volunteer](t, rec).Status)

		rec = a.do(t, http.MethodPatch, path+"/status", token, api.StatusRequest{Status: "maybe"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by status", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/api/admin/volunteers", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[api.VolunteersResponse](t, rec).Volunteers, 2)

		rec = a.do(t, http.MethodGet, "/api/admin/volunteers?status=accepted", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		vs := decode[api.VolunteersResponse](t, rec).Volunteers
		require.Len(t, vs, 1)
		assert.Equal(t, alan.ID, vs[0].ID)

		rec = a.do(t, http.MethodGet, "/api/admin/volunteers?status=maybe", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		jpath := fmt.Sprintf("/api/admin/volunteers/%d", joan.ID)
		rec := a.do(t, http.MethodDelete, jpath, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodGet, jpath, token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Volunteer not found", errorMessage(t, rec))

		rec = a.do(t, http.MethodDelete, jpath, token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
