package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType describes the kind of ledger event a transaction records.
type TransactionType string

// Supported transaction types
const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// Transaction records a single ledger event. Transactions are immutable once
// created: the engine appends them to the store and to the participating
// accounts, and they are never mutated or deleted afterwards.
type Transaction struct {
	TransactionID uuid.UUID       `json:"transaction_id"` // Unique identifier of the transaction
	Type          TransactionType `json:"type"`           // DEPOSIT, WITHDRAWAL or TRANSFER
	Amount        decimal.Decimal `json:"amount"`         // Strictly positive amount in DH
	Timestamp     time.Time       `json:"timestamp"`      // Creation time, non-decreasing within one engine
	Description   string          `json:"description"`    // Never empty; defaulted per type by the engine
	Source        *Account        `json:"-"`              // Account the operation was invoked on; debited side of a transfer
	Destination   *Account        `json:"-"`              // Credited account; set for transfers only
}
