package database

import (
	"context"
	"database/sql"
)

// DB is the narrow persistence surface the repositories program against.
// Exec reports affected rows so status writes can tell a miss from a hit.
// SQLDB exposes the underlying pool for the migration runner, which needs
// database/sql semantics.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	SQLDB() *sql.DB
}

// Tx mirrors the DB surface inside a transaction boundary.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

// WithinTx runs fn inside a transaction and commits only when fn returns
// nil. The deferred rollback error is discarded; after a commit it only
// reports that the transaction already closed.
func WithinTx(ctx context.Context, db DB, fn func(Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
