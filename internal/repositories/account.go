package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
)

// AccountRepository is the in-memory account store.
type AccountRepository struct {
	mu       deadlock.RWMutex
	accounts []*models.Account
	index    map[uuid.UUID]struct{}
}

// NewAccountRepository creates an empty account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{index: make(map[uuid.UUID]struct{})}
}

// Save stores an account. Saving an account that is already present is a
// no-op: account state lives on the entity, so there is nothing to update.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	if account == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[account.AccountID]; ok {
		return nil
	}
	r.index[account.AccountID] = struct{}{}
	r.accounts = append(r.accounts, account)

	logger.Log.Debugw("account saved", "account_id", account.AccountID, "type", account.Type)
	return nil
}

// FindAll returns a copy of all stored accounts in insertion order.
func (r *AccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}
