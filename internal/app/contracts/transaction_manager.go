package contracts

import "context"

// TransactionManager wraps fn in a single storage transaction. Repositories
// pick the transaction up from the derived context, so a guard check and the
// inserts that depend on it commit or roll back together.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
