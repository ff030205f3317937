package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/media"
	"github.com/phrazzld/pawscout-api/internal/mocks"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnimalService(t *testing.T) (*service.AnimalService, *mocks.AnimalStore, *mocks.MediaHost) {
	t.Helper()
	animals := mocks.NewAnimalStore()
	host := mocks.NewMediaHost()
	svc, err := service.NewAnimalService(animals, host, &mocks.SerialTransactor{}, 3, nil)
	require.NoError(t, err)
	return svc, animals, host
}

func TestAnimalService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAnimalService(t)

	before := time.Now().UTC()
	a, err := svc.Create(ctx, newAnimal("Biscuit"))
	require.NoError(t, err)
	assert.Positive(t, a.ID)
	assert.Equal(t, domain.AnimalStatusAvailable, a.Status)
	assert.NotNil(t, a.Media)
	assert.False(t, a.CreatedAt.Before(before), "created_at is stamped")
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)

	stored, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())

	bad := newAnimal("")
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrEmptyField)
}

func TestAnimalService_LogFields(t *testing.T) {
	ctx := context.Background()
	buf, log := logger.NewTestLogger(t)
	svc, err := service.NewAnimalService(mocks.NewAnimalStore(), mocks.NewMediaHost(), &mocks.SerialTransactor{}, 3, log)
	require.NoError(t, err)

	a, err := svc.Create(ctx, newAnimal("Biscuit"))
	require.NoError(t, err)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "animal created", entry["msg"])
	assert.Equal(t, "animal_service", entry["component"])
	assert.Equal(t, float64(a.ID), entry["animal_id"], "animal_id is logged as a number")
	assert.Equal(t, "available", entry["status"])
}

func TestAnimalService_Update(t *testing.T) {
	ctx := context.Background()
	svc, animals, _ := newAnimalService(t)

	a, err := svc.Create(ctx, newAnimal("Biscuit"))
	require.NoError(t, err)
	require.NoError(t, animals.AppendMedia(ctx, a.ID, []domain.Media{{
		URL: "https://cdn.example.com/a.jpg", PublicID: "a", ResourceType: domain.MediaKindImage,
	}}))

	replacement := newAnimal("Biscuit II")
	replacement.Age = 4
	replacement.Status = domain.AnimalStatusAdopted
	updated, err := svc.Update(ctx, a.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, domain.AnimalStatusAdopted, updated.Status)
	require.Len(t, updated.Media, 1, "media list is preserved")
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(a.UpdatedAt))
	assert.False(t, updated.UpdatedAt.IsZero())
	assert.Equal(t, 1, animals.LockedReads, "current row is read under a lock")

	stored, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biscuit II", stored.Name)
	assert.Equal(t, 4, stored.Age)

	t.Run("empty_status_keeps_current", func(t *testing.T) {
		updated, err := svc.Update(ctx, a.ID, newAnimal("Biscuit III"))
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusAdopted, updated.Status)
	})

	t.Run("keeps_pending_set_by_a_submission", func(t *testing.T) {
		b, err := svc.Create(ctx, newAnimal("Pepper"))
		require.NoError(t, err)
		ok, err := animals.MarkPending(ctx, b.ID)
		require.NoError(t, err)
		require.True(t, ok)

		updated, err := svc.Update(ctx, b.ID, newAnimal("Pepper"))
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusPending, updated.Status)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, newAnimal("Ghost"))
		assert.ErrorIs(t, err, store.ErrAnimalNotFound)
	})
}

func TestAnimalService_UpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAnimalService(t)

	a, err := svc.Create(ctx, newAnimal("Biscuit"))
	require.NoError(t, err)

	// Any transition is allowed, including back from adopted.
	require.NoError(t, svc.UpdateStatus(ctx, a.ID, domain.AnimalStatusAdopted))
	require.NoError(t, svc.UpdateStatus(ctx, a.ID, domain.AnimalStatusAvailable))

	assert.ErrorIs(t, svc.UpdateStatus(ctx, a.ID, "sold"), domain.ErrInvalidAnimalStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 404, domain.AnimalStatusPending), store.ErrAnimalNotFound)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrAnimalNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), store.ErrNotFound)
}

func TestAnimalService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAnimalService(t)

	_, err := svc.Create(ctx, newAnimal("Rex"))
	require.NoError(t, err)
	cat := newAnimal("Tom")
	cat.Type = "cat"
	cat.Status = domain.AnimalStatusPending
	_, err = svc.Create(ctx, cat)
	require.NoError(t, err)

	all, err := svc.List(ctx, store.AnimalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cats, err := svc.List(ctx, store.AnimalFilter{Type: "CAT"})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Tom", cats[0].Name)

	available, err := svc.List(ctx, store.AnimalFilter{Status: domain.AnimalStatusAvailable})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Rex", available[0].Name)
}

func TestAnimalService_AttachMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_batch", func(t *testing.T) {
		svc, _, _ := newAnimalService(t)
		a, err := svc.Create(ctx, newAnimal("Biscuit"))
		require.NoError(t, err)

		files := []media.File{
			imageFile("a.jpg"),
			{Filename: "notes.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")},
			{Filename: "b.mp4", ContentType: "video/mp4", Size: 3, Content: strings.NewReader("mp4")},
		}
		results, err := svc.AttachMedia(ctx, a.ID, files)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		assert.ErrorIs(t, results[1].Err, media.ErrUnsupportedType)
		assert.NoError(t, results[2].Err)

		stored, err := svc.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, stored.Media, 2)
		assert.Equal(t, domain.MediaKindImage, stored.Media[0].ResourceType)
		assert.Equal(t, domain.MediaKindVideo, stored.Media[1].ResourceType)
	})

	t.Run("too_many_files", func(t *testing.T) {
		svc, _, _ := newAnimalService(t)
		a, err := svc.Create(ctx, newAnimal("Biscuit"))
		require.NoError(t, err)

		files := []media.File{imageFile("1"), imageFile("2"), imageFile("3"), imageFile("4")}
		_, err = svc.AttachMedia(ctx, a.ID, files)
		assert.ErrorIs(t, err, media.ErrTooManyFiles)
	})

	t.Run("missing_animal_uploads_nothing", func(t *testing.T) {
		svc, _, host := newAnimalService(t)

		_, err := svc.AttachMedia(ctx, 404, []media.File{imageFile("a.jpg")})
		assert.ErrorIs(t, err, store.ErrAnimalNotFound)
		assert.False(t, host.Has("pawscout/test/1"))
	})

	t.Run("animal_removed_during_upload", func(t *testing.T) {
		svc, animals, host := newAnimalService(t)
		a, err := svc.Create(ctx, newAnimal("Biscuit"))
		require.NoError(t, err)
		animals.AppendMediaFn = func(context.Context, int64, []domain.Media) error {
			return store.ErrAnimalNotFound
		}

		_, err = svc.AttachMedia(ctx, a.ID, []media.File{imageFile("a.jpg")})
		assert.ErrorIs(t, err, store.ErrAnimalNotFound)
		assert.Equal(t, []string{"pawscout/test/1"}, host.Deleted)
	})
}

func TestAnimalService_RemoveMedia(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.AnimalService, *mocks.MediaHost, int64, string) {
		svc, _, host := newAnimalService(t)
		a, err := svc.Create(ctx, newAnimal("Biscuit"))
		require.NoError(t, err)
		results, err := svc.AttachMedia(ctx, a.ID, []media.File{imageFile("a.jpg")})
		require.NoError(t, err)
		return svc, host, a.ID, results[0].Media.PublicID
	}

	t.Run("removes_reference_then_asset", func(t *testing.T) {
		svc, host, id, publicID := setup(t)

		require.NoError(t, svc.RemoveMedia(ctx, id, publicID))
		assert.False(t, host.Has(publicID))

		stored, _ := svc.Get(ctx, id)
		assert.Empty(t, stored.Media)
	})

	t.Run("host_failure_still_removes_reference", func(t *testing.T) {
		svc, host, id, publicID := setup(t)
		host.DeleteErr = errors.New("cdn unreachable")

		err := svc.RemoveMedia(ctx, id, publicID)
		assert.ErrorIs(t, err, media.ErrDeleteFailed)

		stored, _ := svc.Get(ctx, id)
		assert.Empty(t, stored.Media)
	})

	t.Run("asset_already_gone", func(t *testing.T) {
		svc, host, id, publicID := setup(t)
		require.NoError(t, host.Delete(ctx, publicID, domain.MediaKindImage))

		assert.NoError(t, svc.RemoveMedia(ctx, id, publicID))
	})

	t.Run("unknown_reference", func(t *testing.T) {
		svc, _, id, _ := setup(t)
		assert.ErrorIs(t, svc.RemoveMedia(ctx, id, "nope"), store.ErrAnimalMediaNotFound)
	})
}
