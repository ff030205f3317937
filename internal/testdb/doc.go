// Package testdb provides a migrated PostgreSQL database for integration
// tests.
//
// Tests either point PAWSCOUT_TEST_DATABASE_URL at an existing database or
// let the package start a disposable postgres container through
// testcontainers. Each test then runs inside a transaction that is rolled
// back when the test ends, so tests never see each other's rows:
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewPostgresAnimalStore(tx, nil)
//		...
//	})
//
// Everything here is behind the integration build tag.
package testdb
