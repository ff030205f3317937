// Package service holds the use cases of the adoption platform. Services
// coordinate the stores in internal/store, the media host and the domain
// rules; they know nothing about HTTP.
//
// Operations that touch more than one row run inside a store.Transactor so
// that tests can substitute a serial in-memory implementation.
package service
