package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/pawscout-api/internal/store"
)

// SerialTransactor runs units of work one at a time with a nil *sql.Tx,
// which the in-memory stores ignore. Err, when set, is returned instead of
// running the work.
type SerialTransactor struct {
	mu    sync.Mutex
	Err   error
	Calls int
}

var _ store.Transactor = (*SerialTransactor)(nil)

// Transact implements store.Transactor.
func (t *SerialTransactor) Transact(ctx context.Context, fn store.TxFn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}
