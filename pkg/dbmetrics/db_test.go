package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutorPrefersTransaction(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM barbers"))
	assert.Equal(t, "insert", operationOf("  INSERT INTO absences (barber_id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationOf(""))
}
