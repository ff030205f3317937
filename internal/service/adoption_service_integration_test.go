//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/mocks"
	"github.com/phrazzld/pawscout-api/internal/platform/postgres"
	"github.com/phrazzld/pawscout-api/internal/service"
	"github.com/phrazzld/pawscout-api/internal/store"
	"github.com/phrazzld/pawscout-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingApplications makes every insert fail after the animal row has
// already been updated in the same transaction.
type failingApplications struct {
	store.AdoptionStore
}

func (f failingApplications) WithTx(tx *sql.Tx) store.AdoptionStore {
	return failingApplications{f.AdoptionStore.WithTx(tx)}
}

func (failingApplications) Create(context.Context, *domain.AdoptionApplication) error {
	return errors.New("insert rejected")
}

// seedCommittedAnimal stores an animal outside any test transaction, because
// the services open their own, and removes it with its applications when the
// test ends.
func seedCommittedAnimal(t *testing.T, db *sql.DB, animals store.AnimalStore) int64 {
	t.Helper()
	svc, err := service.NewAnimalService(animals, mocks.NewMediaHost(), store.DBTransactor{DB: db, Attempts: 3}, 0, nil)
	require.NoError(t, err)
	a, err := svc.Create(context.Background(), newAnimal("Biscuit"))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = db.ExecContext(ctx, `DELETE FROM adoption_applications WHERE animal_id = $1`, a.ID)
		_, _ = db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, a.ID)
	})
	return a.ID
}

func TestIntegration_AdoptionSubmit(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	animals := postgres.NewPostgresAnimalStore(db, nil)
	applications := postgres.NewPostgresAdoptionStore(db, nil)
	tx := store.DBTransactor{DB: db, Attempts: 3}

	t.Run("failed insert leaves the animal available", func(t *testing.T) {
		id := seedCommittedAnimal(t, db, animals)
		svc, err := service.NewAdoptionService(animals, failingApplications{applications}, tx, nil)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, newApplication(id))
		require.Error(t, err)

		animal, err := animals.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusAvailable, animal.Status)
	})

	t.Run("concurrent submissions all land and leave the animal pending", func(t *testing.T) {
		id := seedCommittedAnimal(t, db, animals)
		svc, err := service.NewAdoptionService(animals, applications, tx, nil)
		require.NoError(t, err)

		const submitters = 8
		var wg sync.WaitGroup
		errs := make(chan error, submitters)
		for i := 0; i < submitters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Submit(ctx, newApplication(id))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, service.ErrAnimalUnavailable)
		}
		require.Positive(t, succeeded)

		animal, err := animals.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusPending, animal.Status)

		apps, err := applications.List(ctx, id)
		require.NoError(t, err)
		assert.Len(t, apps, succeeded)
	})

	t.Run("admin edit racing a submission keeps pending", func(t *testing.T) {
		id := seedCommittedAnimal(t, db, animals)
		adoptions, err := service.NewAdoptionService(animals, applications, tx, nil)
		require.NoError(t, err)
		catalogue, err := service.NewAnimalService(animals, mocks.NewMediaHost(), tx, 0, nil)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := catalogue.Update(ctx, id, newAnimal("Biscuit"))
				assert.NoError(t, err)
			}
		}()
		var submitErr error
		go func() {
			defer wg.Done()
			_, submitErr = adoptions.Submit(ctx, newApplication(id))
		}()
		wg.Wait()
		require.NoError(t, submitErr)

		animal, err := animals.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.AnimalStatusPending, animal.Status)
		assert.False(t, animal.CreatedAt.IsZero())
	})
}
