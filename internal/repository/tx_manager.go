package repository

import (
	"context"

	"swmanager/internal/apperror"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey    contextKey = "gorm_tx"
	scopeKey contextKey = "gorm_scope"
)

// WithScope binds a role-scoped connection pool to the request context.
// Transactions opened by the TransactionManager run on this pool.
func WithScope(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, scopeKey, db)
}

// ScopeFrom returns the connection pool bound by WithScope
func ScopeFrom(ctx context.Context) (*gorm.DB, bool) {
	db, ok := ctx.Value(scopeKey).(*gorm.DB)
	return db, ok && db != nil
}

// TransactionManager manages database transactions via context injection.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct{}

func NewTransactionManager() TransactionManager {
	return &transactionManager{}
}

// RunInTx opens one transaction on the scope bound to ctx. The transaction commits when fn
// returns nil and rolls back when fn fails, panics, or ctx is cancelled.
// Nested calls reuse the outer transaction through a savepoint.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	db, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok {
		db, ok = ScopeFrom(ctx)
	}
	if !ok {
		return apperror.Conflict("No database scope bound to request", nil)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}

// GetDB extracts the transaction from context if present, otherwise the bound scope.
// Repositories never fall back to an unscoped pool.
func GetDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	if db, ok := ScopeFrom(ctx); ok {
		return db.WithContext(ctx)
	}
	panic("repository: no database session bound to context")
}
