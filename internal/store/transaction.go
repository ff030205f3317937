package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pawscout-api/internal/platform/logger"
)

// TxFn is a unit of work executed inside a transaction. Returning nil commits,
// returning an error rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxBeginner starts transactions. *sql.DB implements it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction executes fn within a database transaction, committing when
// fn returns nil and rolling back otherwise. A panic inside fn rolls the
// transaction back and is re-raised.
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			txErr := tx.Rollback()
			if txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	err = fn(ctx, tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	err = tx.Commit()
	if err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("transaction committed")
	return nil
}

// RunInTransactionWithRetry runs fn in a fresh transaction up to attempts
// times, retrying only while the failure wraps ErrConflict. The last error is
// returned when every attempt conflicts.
func RunInTransactionWithRetry(ctx context.Context, db TxBeginner, attempts int, fn TxFn) error {
	if attempts < 1 {
		attempts = 1
	}
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = RunInTransaction(ctx, db, fn)
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn("transaction conflict, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts))
	}
	return err
}

// Transactor runs units of work atomically. Services depend on it rather
// than on a database handle so the unit of work can be exercised in tests.
type Transactor interface {
	Transact(ctx context.Context, fn TxFn) error
}

// DBTransactor runs each unit of work in a database transaction, retrying
// conflicts up to Attempts times.
type DBTransactor struct {
	DB       TxBeginner
	Attempts int
}

var _ Transactor = DBTransactor{}

// Transact implements Transactor.
func (t DBTransactor) Transact(ctx context.Context, fn TxFn) error {
	return RunInTransactionWithRetry(ctx, t.DB, t.Attempts, fn)
}
