package models

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account. The type is fixed at creation.
type AccountType string

// Supported account types
const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// Account holds a balance and the ordered history of transactions it
// participated in. Balance and history are only reachable through accessors:
// the history accessor returns a copy, so queries cannot mutate the ledger
// behind the engine's back, and the balance can only move through Credit and
// Debit, which are reserved for the transaction engine.
type Account struct {
	AccountID uuid.UUID   // Unique identifier of the account
	Type      AccountType // CURRENT or SAVINGS, fixed at creation

	mu           deadlock.RWMutex
	balance      decimal.Decimal
	transactions []*Transaction
	client       *Client
}

// NewAccount creates an account owned by client with the given type and
// initial balance. Validation of the arguments is the account service's job.
func NewAccount(client *Client, accountType AccountType, initialBalance decimal.Decimal) *Account {
	return &Account{
		AccountID: uuid.New(),
		Type:      accountType,
		balance:   initialBalance,
		client:    client,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Client returns the owning client. The reference is a non-owning back
// pointer; the client exclusively owns its account list.
func (a *Account) Client() *Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client
}

// Transactions returns a copy of the account's transaction history in
// insertion order (which is chronological order).
func (a *Account) Transactions() []*Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Credit increases the balance by amount. Reserved for the transaction
// engine; the engine validates the amount before calling.
func (a *Account) Credit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
}

// Debit decreases the balance by amount. Reserved for the transaction engine,
// which checks the balance first; the balance never goes negative.
func (a *Account) Debit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Sub(amount)
}

// AddTransaction appends a transaction to the account's history. Reserved for
// the transaction engine.
func (a *Account) AddTransaction(transaction *Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transactions = append(a.transactions, transaction)
}
