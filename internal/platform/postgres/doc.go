// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx driver through database/sql. It also embeds the
// goose migrations that define the schema and maps driver errors onto the
// store package's sentinel errors.
package postgres
