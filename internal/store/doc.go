// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing lifecycle rules to remain
// independent of specific database technologies or persistence details.
// Every store can be rebound to a transaction with WithTx so services can
// compose several writes atomically through RunInTransaction.
package store
