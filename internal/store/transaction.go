package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
)

// TxFn is a unit of work run inside a transaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction on db. The transaction commits
// when fn returns nil and rolls back when fn returns an error or panics; a
// panic is re-raised after the rollback.
//
// Multi-statement writes that must not be observed half-done, such as
// uncategorizing tasks before their category is deleted, go through here.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx).With("component", "transaction")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", "error", redact.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction after panic",
				"error", redact.Error(rbErr), "panic", p)
		} else {
			log.Error("rolled back transaction after panic", "panic", p)
		}
		// ALLOW-PANIC: re-raised after rollback
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				"rollback_error", redact.Error(rbErr),
				"original_error", redact.Error(err))
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction", "error", redact.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", "error", redact.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
