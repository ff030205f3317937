package api_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

func TestSubmitApplication(t *testing.T) {
	t.Parallel()

	t.Run("marks the animal pending", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		id := a.seedAnimal(t, "Rex", domain.AnimalStatusAvailable)

		rec := a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", applicationRequest())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[api.ApplicationSubmittedResponse](t, rec)
		assert.Equal(t, "Adoption application submitted successfully", resp.Success)
		assert.Equal(t, id, resp.Application.AnimalID)

		animal, err := a.animals.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusPending, animal.Status)

		rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/adopt/%d", resp.Application.ID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "grace@example.com", decode[domain.AdoptionApplication](t, rec).Email)
	})

	t.Run("pending animals keep accepting applications", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		id := a.seedAnimal(t, "Rex", domain.AnimalStatusPending)

		rec := a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", applicationRequest())
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("adopted animal", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		id := a.seedAnimal(t, "Rex", domain.AnimalStatusAdopted)

		rec := a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", applicationRequest())
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Animal is not available for adoption", errorMessage(t, rec))
	})

	t.Run("missing animal", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/adopt/42", "", applicationRequest())
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Animal not found", errorMessage(t, rec))
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		id := a.seedAnimal(t, "Rex", domain.AnimalStatusAvailable)

		req := applicationRequest()
		req.AgreeToTerms = false
		rec := a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "agreeToTerms must be accepted", errorMessage(t, rec))

		animal, err := a.animals.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusAvailable, animal.Status)
	})

	t.Run("concurrent submissions", func(t *testing.T) {
		t.Parallel()
		a := newTestAPI(t)
		id := a.seedAnimal(t, "Rex", domain.AnimalStatusAvailable)

		var wg sync.WaitGroup
		codes := make([]int, 10)
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", applicationRequest()).Code
			}(i)
		}
		wg.Wait()

		for _, code := range codes {
			assert.Equal(t, http.StatusCreated, code)
		}
		n, err := a.adoptions.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(len(codes)), n)
	})
}

func TestAdminApplications(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	_, token := a.admin(t, "root@example.com")
	rex := a.seedAnimal(t, "Rex", domain.AnimalStatusAvailable)
	misu := a.seedAnimal(t, "Misu", domain.AnimalStatusAvailable)

	for _, id := range []int64{rex, rex, misu} {
		rec := a.do(t, http.MethodPost, fmt.Sprintf("/api/adopt/%d", id), "", applicationRequest())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := a.do(t, http.MethodGet, "/api/admin/adoptions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[api.ApplicationsResponse](t, rec).Applications, 3)

	rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/admin/adoptions?animalId=%d", rex), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decode[api.ApplicationsResponse](t, rec).Applications
	require.Len(t, apps, 2)

	rec = a.do(t, http.MethodGet, "/api/admin/adoptions?animalId=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/admin/adoptions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	t.Run("applications outlive their animal", func(t *testing.T) {
		rec := a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/animals/%d", rex), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/adopt/%d", apps[0].ID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, rex, decode[domain.AdoptionApplication](t, rec).AnimalID)
	})

	t.Run("delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/adoptions/%d", apps[0].ID)
		rec := a.do(t, http.MethodDelete, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodDelete, path, token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Adoption application not found", errorMessage(t, rec))

		rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/adopt/%d", apps[0].ID), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
