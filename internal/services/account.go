package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
)

// AccountWriter defines write operations on the account store.
type AccountWriter interface {
	Save(ctx context.Context, account *models.Account) error // Stores one account
}

// AccountReader defines read operations on the account store.
type AccountReader interface {
	FindAll(ctx context.Context) ([]*models.Account, error) // Returns all accounts in insertion order
}

// AccountService creates accounts and derives balance statistics over the
// whole account store.
type AccountService struct {
	writer AccountWriter
	reader AccountReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(writer AccountWriter, reader AccountReader) *AccountService {
	return &AccountService{writer: writer, reader: reader}
}

// CreateAccount opens an account for the client with the given type and a
// zero or positive initial balance, stores it and links it to the client.
func (s *AccountService) CreateAccount(ctx context.Context, client *models.Client, accountType models.AccountType, initialBalance decimal.Decimal) (*models.Account, error) {
	if client == nil {
		return nil, invalidArgumentf("client cannot be nil")
	}
	if accountType == "" {
		return nil, invalidArgumentf("account type cannot be empty")
	}
	if initialBalance.Sign() < 0 {
		return nil, invalidArgumentf("initial balance cannot be negative")
	}

	account := models.NewAccount(client, accountType, initialBalance)
	if err := s.writer.Save(ctx, account); err != nil {
		logger.Log.Errorw("failed to save account", "client_id", client.ClientID, "error", err)
		return nil, err
	}
	client.AddAccount(account)

	logger.Log.Infow("account created",
		"account_id", account.AccountID, "client_id", client.ClientID, "type", accountType, "balance", initialBalance)
	return account, nil
}

// GetByID returns the stored account with the given id, or nil when no such
// account exists.
func (s *AccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	accounts, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.AccountID == accountID {
			return account, nil
		}
	}
	return nil, nil
}

// TotalSystemBalance sums the balances of all stored accounts.
func (s *AccountService) TotalSystemBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.reader.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance())
	}
	return total, nil
}

// AverageAccountBalance returns the mean balance over all stored accounts,
// or zero when no accounts exist.
func (s *AccountService) AverageAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	accounts, err := s.reader.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(accounts) == 0 {
		return decimal.Zero, nil
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance())
	}
	return total.Div(decimal.NewFromInt(int64(len(accounts)))), nil
}

// TotalAccountCount returns the number of stored accounts.
func (s *AccountService) TotalAccountCount(ctx context.Context) (int, error) {
	accounts, err := s.reader.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}
