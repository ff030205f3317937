//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/pawscout-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseURLEnv names an existing database to use instead of a container.
const DatabaseURLEnv = "PAWSCOUT_TEST_DATABASE_URL"

// TestTimeout bounds container startup and migration.
const TestTimeout = 90 * time.Second

var (
	once    sync.Once
	shared  *sql.DB
	initErr error
)

// Open returns a database with every migration applied. The database is
// shared by all tests in the package binary.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	once.Do(func() {
		shared, initErr = open()
	})
	require.NoError(t, initErr, "failed to prepare test database")
	return shared
}

func open() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		container, err := tcpostgres.Run(ctx,
			"docker.io/postgres:17-alpine",
			tcpostgres.WithDatabase("pawscout_test"),
			tcpostgres.WithUsername("pawscout"),
			tcpostgres.WithPassword("pawscout"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			return nil, err
		}
		// The container is reaped by testcontainers' ryuk sidecar when the
		// test binary exits.
		if dsn, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := postgres.Migrate(db, "up", nil); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
