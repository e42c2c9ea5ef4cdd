package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories write their statements against it so the same code runs
// inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is a transactional handle.
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

// Beginner starts transactions. *sql.DB is adapted via Handle.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
}

// Handle adapts *sql.DB to Beginner.
type Handle struct {
	*sql.DB
}

func (h Handle) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	return h.DB.BeginTx(ctx, opts)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics.
func WithTx(ctx context.Context, b Beginner, fn func(tx Querier) error) error {
	tx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logrus.WithError(rbErr).Error("rollback after panic failed")
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
