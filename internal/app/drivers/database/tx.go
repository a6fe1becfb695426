package database

import (
	"context"
	"database/sql"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/pkg/exceptions"
)

type txContextKey struct{}

// Querier is the subset of *sql.DB and *sql.Tx the repositories need, so a
// repository runs against whichever one the context carries.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Conn returns the transaction bound to ctx by SQLTransactionManager, or the
// plain connection pool when no transaction is running.
func Conn(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type SQLTransactionManager struct {
	DB *sql.DB
}

func NewSQLTransactionManager(db *sql.DB) contracts.TransactionManager {
	return &SQLTransactionManager{DB: db}
}

func (tm *SQLTransactionManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	tx, err := tm.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	return nil
}
