// Package mocks provides centralized test doubles for the interfaces used
// throughout the application.
//
// The store doubles are in-memory implementations safe for concurrent use;
// their WithTx methods return the receiver, so services exercised with
// SerialTransactor see the same data inside and outside a unit of work.
// Each double also has function fields that override a single method when a
// test needs to inject a failure:
//
//	accounts := mocks.NewAccountStore()
//	accounts.GetByIDFn = func(ctx context.Context, id int64) (*domain.Account, error) {
//		return nil, errors.New("connection reset")
//	}
package mocks
