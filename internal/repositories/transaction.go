package repositories

import (
	"context"
	"errors"

	"github.com/sasha-s/go-deadlock"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
)

// ErrNilRecord is returned when a nil entity is passed to a store.
var ErrNilRecord = errors.New("record cannot be nil")

// TransactionRepository is the append-only in-memory transaction store.
// Appends and scans are guarded by the repository's own lock, independent of
// any engine-level locking, so statistics queries can scan the full store
// while mutations are in flight.
type TransactionRepository struct {
	mu           deadlock.RWMutex
	transactions []*models.Transaction
}

// NewTransactionRepository creates an empty transaction store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Save appends a transaction to the store. Transactions are never updated or
// deleted; insertion order is preserved.
func (r *TransactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	r.transactions = append(r.transactions, transaction)
	total := len(r.transactions)
	r.mu.Unlock()

	logger.Log.Debugw("transaction saved",
		"transaction_id", transaction.TransactionID,
		"type", transaction.Type,
		"amount", transaction.Amount,
		"total", total,
	)
	return nil
}

// FindAll returns a copy of the full store in insertion order.
func (r *TransactionRepository) FindAll(ctx context.Context) ([]*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}
