package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so statement helpers
// can run standalone or inside a unit of work.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrTransactionFailed, err)
	}

	err = fn(tx)
	if err == nil {
		err = tx.Commit(ctx)
		if err != nil {
			return fmt.Errorf("%w: commit: %w", domain.ErrTransactionFailed, err)
		}

		return nil
	}

	err = translateTxError(err)

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// translateTxError marks errors the store raises while arbitrating concurrent
// units (deadlock, serialization failure, lock timeout) as transaction
// failures so callers can retry the whole attempt.
func translateTxError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if pgerrcode.IsTransactionRollback(pgErr.Code) || pgErr.Code == pgerrcode.LockNotAvailable {
		return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	return err
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
