package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/coldpilot/coldpilot-backend/internal/db"
)

// fakeTx records whether the transaction was committed or rolled back.
type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (db.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	b := &fakeBeginner{tx: tx}

	err := db.WithTx(context.Background(), b, func(q db.Querier) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.committed {
		t.Error("expected commit")
	}
	if tx.rolledBack {
		t.Error("unexpected rollback")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	b := &fakeBeginner{tx: tx}

	wantErr := fmt.Errorf("prospect update failed")
	err := db.WithTx(context.Background(), b, func(q db.Querier) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected the fn error back, got %v", err)
	}
	if tx.committed {
		t.Error("must not commit on error")
	}
	if !tx.rolledBack {
		t.Error("expected rollback")
	}
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	b := &fakeBeginner{tx: tx}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate")
		}
		if !tx.rolledBack {
			t.Error("expected rollback after panic")
		}
		if tx.committed {
			t.Error("must not commit after panic")
		}
	}()

	_ = db.WithTx(context.Background(), b, func(q db.Querier) error {
		panic("boom")
	})
}

func TestWithTxBeginFailure(t *testing.T) {
	b := &fakeBeginner{beginErr: fmt.Errorf("pool exhausted")}

	err := db.WithTx(context.Background(), b, func(q db.Querier) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if err == nil {
		t.Error("expected begin error")
	}
}

func TestWithTxCommitFailure(t *testing.T) {
	tx := &fakeTx{commitErr: fmt.Errorf("serialization failure")}
	b := &fakeBeginner{tx: tx}

	err := db.WithTx(context.Background(), b, func(q db.Querier) error {
		return nil
	})
	if err == nil {
		t.Error("expected commit error to surface")
	}
}
