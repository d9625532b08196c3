// Package txn groups mutations into transactions and reverses them.
// Two independent undo mechanisms coexist: field-level undo of a
// single ChangeRecord, and transaction-level undo that replays a
// committed operation list in reverse.
package txn

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gedtree/gedtree/types"
)

// Transaction-protocol violations. Unlike absent entities these are
// raised immediately; state is unaffected.
var (
	ErrTransactionActive = errors.New("transaction already in progress")
	ErrNoTransaction     = errors.New("no active transaction")
)

// timeNow is swapped in tests for deterministic timestamps.
var timeNow = time.Now

// Manager owns the process-wide transaction state for one session: at
// most one transaction is open at a time, and operations recorded
// outside a transaction are silently dropped (the write itself still
// happens; it just is not grouped). Manager shares the session's
// single-writer assumption and carries no locking of its own.
type Manager struct {
	active *types.TransactionRecord
	ops    []types.Operation
}

// NewManager returns a manager with no open transaction.
func NewManager() *Manager {
	return &Manager{}
}

// Active reports whether a transaction is open.
func (m *Manager) Active() bool {
	return m.active != nil
}

// Begin opens a new transaction. Nested transactions are rejected with
// ErrTransactionActive rather than queued.
func (m *Manager) Begin(description string) (*types.TransactionRecord, error) {
	if m.active != nil {
		return nil, ErrTransactionActive
	}
	m.active = &types.TransactionRecord{
		ID:          "txn_" + uuid.NewString(),
		Description: description,
		StartedAt:   timeNow(),
	}
	m.ops = nil
	return m.active, nil
}

// Record buffers an operation in the open transaction. A no-op when no
// transaction is open. Implements mutate.Recorder.
func (m *Manager) Record(op types.Operation) {
	if m.active == nil {
		return
	}
	m.ops = append(m.ops, op)
}

// Commit packages the buffered operations into a complete transaction
// record and clears the transaction state.
func (m *Manager) Commit() (*types.TransactionRecord, error) {
	if m.active == nil {
		return nil, ErrNoTransaction
	}
	rec := m.active
	rec.CommittedAt = timeNow()
	rec.Operations = m.ops
	rec.OperationCount = len(m.ops)

	m.active = nil
	m.ops = nil
	return rec, nil
}

// Rollback discards the open transaction and its buffered operations
// without producing a record. The underlying document is not touched:
// rollback cancels grouping, it does not reverse applied writes.
func (m *Manager) Rollback() error {
	if m.active == nil {
		return ErrNoTransaction
	}
	m.active = nil
	m.ops = nil
	return nil
}
