package postgres_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/pawscout-api/internal/platform/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS(t *testing.T) {
	names, err := fs.Glob(postgres.MigrationsFS(), "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		body, err := fs.ReadFile(postgres.MigrationsFS(), name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), "%s has no Up section", name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), "%s has no Down section", name)
	}
}

func TestMigrate_UnknownCommand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = postgres.Migrate(db, "sideways", nil)
	assert.ErrorContains(t, err, `unknown migration command "sideways"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
