package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsRowColumns = []string{
	"shelter_name", "shelter_email", "shelter_phone", "shelter_address", "city", "state", "zip_code",
	"logo", "updated_at",
}

func TestPostgresSettingsStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_when_unset", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSettingsStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM shelter_settings")).
			WillReturnRows(sqlmock.NewRows(settingsRowColumns))

		settings, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultShelterName, settings.ShelterName)
		assert.Nil(t, settings.Logo)
	})

	t.Run("stored_with_logo", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSettingsStore(db, quietLogger())

		logo := []byte(`{"url":"https://cdn.example.com/logo.png","public_id":"pawscout/logo","resource_type":"image"}`)
		mock.ExpectQuery(regexp.QuoteMeta("FROM shelter_settings")).
			WillReturnRows(sqlmock.NewRows(settingsRowColumns).
				AddRow("Happy Tails", "hi@example.com", "", "", "Austin", "TX", "73301", logo, fixedTime))

		settings, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Happy Tails", settings.ShelterName)
		require.NotNil(t, settings.Logo)
		assert.Equal(t, "pawscout/logo", settings.Logo.PublicID)
	})

	t.Run("null_logo", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSettingsStore(db, quietLogger())

		mock.ExpectQuery(regexp.QuoteMeta("FROM shelter_settings")).
			WillReturnRows(sqlmock.NewRows(settingsRowColumns).
				AddRow("Happy Tails", "", "", "", "", "", "", nil, fixedTime))

		settings, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, settings.Logo)
	})
}

func TestPostgresSettingsStore_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, quietLogger())

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WithArgs(domain.DefaultShelterName).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = 1 FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(settingsRowColumns).
			AddRow("Happy Tails", "", "", "", "Austin", "TX", "", nil, fixedTime))

	settings, err := s.GetForUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Happy Tails", settings.ShelterName)
}

func TestPostgresSettingsStore_Save(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("Happy Tails", "", "", "", "Austin", "TX", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(fixedTime))

	settings := &domain.ShelterSettings{ShelterName: "Happy Tails", City: "Austin", State: "TX"}
	require.NoError(t, s.Save(context.Background(), settings))
	assert.Equal(t, fixedTime, settings.UpdatedAt)
}
