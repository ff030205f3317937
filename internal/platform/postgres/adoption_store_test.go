package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationRowColumns = []string{
	"id", "animal_id", "applicant_name", "applicant_last_name", "email", "phone", "address", "city",
	"state", "zip_code", "reason_for_adoption", "experience_with_pets", "home_type",
	"who_lives_in_house", "agree_to_terms", "created_at",
}

func TestPostgresAdoptionStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAdoptionStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO adoption_applications")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))

	app := &domain.AdoptionApplication{AnimalID: 4, ApplicantName: "Grace", AgreeToTerms: true, CreatedAt: fixedTime}
	require.NoError(t, s.Create(context.Background(), app))
	assert.Equal(t, int64(21), app.ID)
}

func TestPostgresAdoptionStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filtered_by_animal", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAdoptionStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE animal_id = $1")).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(applicationRowColumns).
				AddRow(int64(1), int64(4), "Grace", "Hopper", "grace@example.com", "+12025550143",
					"1 Main St", "Arlington", "VA", "22201", "company", "", "house", "", true, fixedTime))

		apps, err := s.List(ctx, 4)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, int64(4), apps[0].AnimalID)
		assert.True(t, apps[0].AgreeToTerms)
	})

	t.Run("all", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAdoptionStore(db, quietLogger())

		mock.ExpectQuery(`FROM adoption_applications ORDER BY`).
			WillReturnRows(sqlmock.NewRows(applicationRowColumns))

		apps, err := s.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}

func TestPostgresAdoptionStore_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	s := NewPostgresAdoptionStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM adoption_applications WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(applicationRowColumns))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM adoption_applications")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.GetByID(ctx, 9)
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 9), store.ErrApplicationNotFound)
}
