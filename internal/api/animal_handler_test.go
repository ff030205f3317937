package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pawscout-api/internal/api"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
)

func TestAnimalCatalogue(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	_, token := a.admin(t, "root@example.com")

	rec := a.do(t, http.MethodPost, "/api/admin/animals", token, animalRequest("Misu"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Animal](t, rec)
	assert.Equal(t, domain.AnimalStatusAvailable, created.Status)
	assert.NotNil(t, created.Media)

	a.seedAnimal(t, "Rex", domain.AnimalStatusAdopted)

	t.Run("list is public", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/api/animals", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[api.AnimalsResponse](t, rec).Animals, 2)
	})

	t.Run("list filters by status and type", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/api/animals?status=available", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		animals := decode[api.AnimalsResponse](t, rec).Animals
		require.Len(t, animals, 1)
		assert.Equal(t, "Misu", animals[0].Name)

		rec = a.do(t, http.MethodGet, "/api/animals?type=dog", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		animals = decode[api.AnimalsResponse](t, rec).Animals
		require.Len(t, animals, 1)
		assert.Equal(t, "Rex", animals[0].Name)

		rec = a.do(t, http.MethodGet, "/api/animals?status=lost", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, fmt.Sprintf("/api/animals/%d", created.ID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Misu", decode[domain.Animal](t, rec).Name)

		rec = a.do(t, http.MethodGet, "/api/animals/999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Animal not found", errorMessage(t, rec))

		rec = a.do(t, http.MethodGet, "/api/animals/0", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update overwrites attributes", func(t *testing.T) {
		req := animalRequest("Misu Grande")
		req.Status = "pending"
		rec := a.do(t, http.MethodPut, fmt.Sprintf("/api/admin/animals/%d", created.ID), token, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[domain.Animal](t, rec)
		assert.Equal(t, "Misu Grande", updated.Name)
		assert.Equal(t, domain.AnimalStatusPending, updated.Status)

		rec = a.do(t, http.MethodPut, "/api/admin/animals/999", token, animalRequest("Ghost"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("status update is unconditional", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/animals/%d/status", created.ID)
		for _, status := range []string{"adopted", "available"} {
			rec := a.do(t, http.MethodPatch, path, token, api.StatusRequest{Status: status})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, domain.AnimalStatus(status), decode[domain.Animal](t, rec).Status)
		}

		rec := a.do(t, http.MethodPatch, path, token, api.StatusRequest{Status: "lost"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires an administrator", func(t *testing.T) {
		a.register(t, "user@example.com")
		userToken := a.login(t, "user@example.com")

		rec := a.do(t, http.MethodPost, "/api/admin/animals", userToken, animalRequest("Nope"))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = a.do(t, http.MethodPost, "/api/admin/animals", "", animalRequest("Nope"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create validates", func(t *testing.T) {
		req := animalRequest("")
		rec := a.do(t, http.MethodPost, "/api/admin/animals", token, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name cannot be empty", errorMessage(t, rec))
	})

	t.Run("delete", func(t *testing.T) {
		rec := a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/animals/%d", created.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/animals/%d", created.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAnimalMedia(t *testing.T) {
	t.Parallel()
	a := newTestAPI(t)
	_, token := a.admin(t, "root@example.com")
	id := a.seedAnimal(t, "Rex", domain.AnimalStatusAvailable)
	mediaPath := fmt.Sprintf("/api/admin/animals/%d/media", id)

	rec := a.doMultipart(t, mediaPath, token, "files",
		upload{"rex.jpg", "image/jpeg", "jpeg"},
		upload{"notes.txt", "text/plain", "text"},
		upload{"rex.mp4", "video/mp4", "mp4"},
	)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[api.UploadResultsResponse](t, rec)
	assert.Equal(t, 2, resp.Uploaded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "notes.txt", resp.Results[1].Filename)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, domain.MediaKindVideo, resp.Results[2].Media.ResourceType)

	animal, err := a.animals.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, animal.Media, 2)

	t.Run("remove by public ID containing slashes", func(t *testing.T) {
		publicID := animal.Media[0].PublicID
		require.Contains(t, publicID, "/")

		rec := a.do(t, http.MethodDelete, mediaPath+"/"+publicID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, a.host.Has(publicID))

		after, err := a.animals.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, after.Media, 1)

		rec = a.do(t, http.MethodDelete, mediaPath+"/"+url.PathEscape(publicID), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Media not found on this animal", errorMessage(t, rec))
	})

	t.Run("host failure after reference removal", func(t *testing.T) {
		after, err := a.animals.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, after.Media, 1)

		a.host.DeleteErr = errors.New("cdn down")
		defer func() { a.host.DeleteErr = nil }()

		rec := a.do(t, http.MethodDelete, mediaPath+"/"+url.PathEscape(after.Media[0].PublicID), token, nil)
		assert.Equal(t, http.StatusFailedDependency, rec.Code)

		final, err := a.animals.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Empty(t, final.Media)
	})

	t.Run("too many files", func(t *testing.T) {
		files := make([]upload, 4)
		for i := range files {
			files[i] = upload{fmt.Sprintf("%d.png", i), "image/png", "png"}
		}
		rec := a.doMultipart(t, mediaPath, token, "files", files...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Too many files in one upload", errorMessage(t, rec))
	})

	t.Run("no files", func(t *testing.T) {
		rec := a.doMultipart(t, mediaPath, token, "other", upload{"a.png", "image/png", "png"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No files provided", errorMessage(t, rec))
	})

	t.Run("unknown animal", func(t *testing.T) {
		rec := a.doMultipart(t, "/api/admin/animals/999/media", token, "files", upload{"a.png", "image/png", "png"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("every upload failing", func(t *testing.T) {
		a.host.UploadErr = fmt.Errorf("%w: quota", media.ErrUploadFailed)
		defer func() { a.host.UploadErr = nil }()

		rec := a.doMultipart(t, mediaPath, token, "files", upload{"a.png", "image/png", "png"})
		assert.Equal(t, http.StatusFailedDependency, rec.Code)
		assert.Equal(t, 1, decode[api.UploadResultsResponse](t, rec).Failed)
	})
}
