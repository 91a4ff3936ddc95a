package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
)

// Per-operation amount limits in DH.
var (
	WithdrawLimit = decimal.NewFromInt(10000)
	DepositLimit  = decimal.NewFromInt(20000)
	TransferLimit = decimal.NewFromInt(30000)
)

// TransactionWriter appends transaction records to the ledger store.
type TransactionWriter interface {
	Save(ctx context.Context, transaction *models.Transaction) error // Appends one transaction
}

// TransactionReader reads the full ledger store.
type TransactionReader interface {
	FindAll(ctx context.Context) ([]*models.Transaction, error) // Returns all transactions in insertion order
}

// TransactionService is the transaction engine: it validates and executes
// deposits, withdrawals and transfers, mutating account balances and
// recording immutable transaction history. It also answers the per-client
// and system-wide queries defined in statistics.go.
//
// The three mutating operations are serialized behind a single engine mutex,
// so the balance check-then-update sequence is atomic even with concurrent
// callers and a two-account transfer needs no per-account lock ordering.
type TransactionService struct {
	writer TransactionWriter
	reader TransactionReader

	mu   deadlock.Mutex
	last time.Time        // latest issued timestamp, under mu
	now  func() time.Time // clock, replaceable in tests
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(writer TransactionWriter, reader TransactionReader) *TransactionService {
	return &TransactionService{
		writer: writer,
		reader: reader,
		now:    time.Now,
	}
}

// timestamp returns a creation time that never decreases across transactions
// issued by this engine. Caller must hold s.mu.
func (s *TransactionService) timestamp() time.Time {
	t := s.now()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}

// defaultDescription substitutes fallback when the caller supplied a blank
// description.
func defaultDescription(description, fallback string) string {
	if strings.TrimSpace(description) == "" {
		return fallback
	}
	return description
}

// Deposit credits amount to the account and records a DEPOSIT transaction.
// Validation happens strictly before any mutation: a rejected deposit leaves
// balance and history untouched.
func (s *TransactionService) Deposit(ctx context.Context, account *models.Account, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if account == nil {
		return nil, invalidArgumentf("account cannot be nil")
	}
	if amount.Sign() <= 0 {
		return nil, invalidArgumentf("deposit amount must be positive")
	}
	if amount.GreaterThan(DepositLimit) {
		return nil, invalidArgumentf("deposit amount exceeds limit of %s DH", DepositLimit.StringFixed(0))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := &models.Transaction{
		TransactionID: uuid.New(),
		Type:          models.TransactionTypeDeposit,
		Amount:        amount,
		Timestamp:     s.timestamp(),
		Description:   defaultDescription(description, "Deposit"),
		Source:        account,
	}
	if err := s.writer.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save deposit", "account_id", account.AccountID, "amount", amount, "error", err)
		return nil, err
	}

	account.Credit(amount)
	account.AddTransaction(txn)

	logger.Log.Infow("deposit applied",
		"transaction_id", txn.TransactionID, "account_id", account.AccountID, "amount", amount)
	return txn, nil
}

// Withdraw debits amount from the account and records a WITHDRAWAL
// transaction. The debit is refused when it would push the balance below
// zero; the returned error carries the available and requested amounts.
func (s *TransactionService) Withdraw(ctx context.Context, account *models.Account, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if account == nil {
		return nil, invalidArgumentf("account cannot be nil")
	}
	if amount.Sign() <= 0 {
		return nil, invalidArgumentf("withdrawal amount must be positive")
	}
	if amount.GreaterThan(WithdrawLimit) {
		return nil, invalidArgumentf("withdrawal amount exceeds limit of %s DH", WithdrawLimit.StringFixed(0))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if account.Balance().LessThan(amount) {
		return nil, &InsufficientBalanceError{Available: account.Balance(), Requested: amount}
	}

	txn := &models.Transaction{
		TransactionID: uuid.New(),
		Type:          models.TransactionTypeWithdrawal,
		Amount:        amount,
		Timestamp:     s.timestamp(),
		Description:   defaultDescription(description, "Withdraw"),
		Source:        account,
	}
	if err := s.writer.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save withdrawal", "account_id", account.AccountID, "amount", amount, "error", err)
		return nil, err
	}

	account.Debit(amount)
	account.AddTransaction(txn)

	logger.Log.Infow("withdrawal applied",
		"transaction_id", txn.TransactionID, "account_id", account.AccountID, "amount", amount)
	return txn, nil
}

// Transfer moves amount from source to destination as one logical event: a
// single TRANSFER transaction is recorded and appended to both accounts'
// histories. Both balance updates happen inside the same critical section,
// so no caller ever observes a state where only one side moved.
func (s *TransactionService) Transfer(ctx context.Context, source, destination *models.Account, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if source == nil {
		return nil, invalidArgumentf("source account cannot be nil")
	}
	if destination == nil {
		return nil, invalidArgumentf("destination account cannot be nil")
	}
	if amount.Sign() <= 0 {
		return nil, invalidArgumentf("transfer amount must be positive")
	}
	if amount.GreaterThan(TransferLimit) {
		return nil, invalidArgumentf("transfer amount exceeds limit of %s DH", TransferLimit.StringFixed(0))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if source.Balance().LessThan(amount) {
		return nil, &InsufficientBalanceError{Available: source.Balance(), Requested: amount}
	}

	txn := &models.Transaction{
		TransactionID: uuid.New(),
		Type:          models.TransactionTypeTransfer,
		Amount:        amount,
		Timestamp:     s.timestamp(),
		Description:   defaultDescription(description, "Transfer"),
		Source:        source,
		Destination:   destination,
	}
	if err := s.writer.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save transfer",
			"source_id", source.AccountID, "destination_id", destination.AccountID, "amount", amount, "error", err)
		return nil, err
	}

	source.Debit(amount)
	destination.Credit(amount)
	source.AddTransaction(txn)
	destination.AddTransaction(txn)

	logger.Log.Infow("transfer applied",
		"transaction_id", txn.TransactionID,
		"source_id", source.AccountID,
		"destination_id", destination.AccountID,
		"amount", amount)
	return txn, nil
}
