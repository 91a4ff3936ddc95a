package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/models"
)

// Per-client reporting is scoped to the client's primary account, the first
// account in the client's list. This single-primary-account model is a
// documented constraint of the reporting operations, not an oversight.

// primaryAccount resolves the client's primary account.
func primaryAccount(client *models.Client) (*models.Account, error) {
	if client == nil {
		return nil, invalidArgumentf("client cannot be nil")
	}
	accounts := client.Accounts()
	if len(accounts) == 0 {
		return nil, invalidArgumentf("client has no accounts")
	}
	return accounts[0], nil
}

// TransactionsOf returns the primary account's transactions sorted ascending
// by timestamp. The sort is stable: equal timestamps keep insertion order.
func (s *TransactionService) TransactionsOf(client *models.Client) ([]*models.Transaction, error) {
	return s.SortTransactionsByDate(client, true)
}

// SortTransactionsByDate returns the primary account's transactions sorted by
// timestamp in the requested direction. The underlying history is not
// mutated; the account hands out a copy.
func (s *TransactionService) SortTransactionsByDate(client *models.Client, ascending bool) ([]*models.Transaction, error) {
	account, err := primaryAccount(client)
	if err != nil {
		return nil, err
	}

	transactions := account.Transactions()
	sort.SliceStable(transactions, func(i, j int) bool {
		if ascending {
			return transactions[i].Timestamp.Before(transactions[j].Timestamp)
		}
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
	return transactions, nil
}

// FilterTransactions returns the subsequence of the primary account's
// transactions satisfying keep, preserving insertion order.
func (s *TransactionService) FilterTransactions(client *models.Client, keep func(*models.Transaction) bool) ([]*models.Transaction, error) {
	if keep == nil {
		return nil, invalidArgumentf("filter predicate cannot be nil")
	}
	account, err := primaryAccount(client)
	if err != nil {
		return nil, err
	}

	var out []*models.Transaction
	for _, txn := range account.Transactions() {
		if keep(txn) {
			out = append(out, txn)
		}
	}
	return out, nil
}

// sumByType sums the amounts of the given type over a transaction sequence.
func sumByType(transactions []*models.Transaction, transactionType models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.Type == transactionType {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// countByType counts transactions of the given type in a sequence.
func countByType(transactions []*models.Transaction, transactionType models.TransactionType) int {
	count := 0
	for _, txn := range transactions {
		if txn.Type == transactionType {
			count++
		}
	}
	return count
}

// totalFor sums the given type over the client's primary account.
func (s *TransactionService) totalFor(client *models.Client, transactionType models.TransactionType) (decimal.Decimal, error) {
	account, err := primaryAccount(client)
	if err != nil {
		return decimal.Zero, err
	}
	return sumByType(account.Transactions(), transactionType), nil
}

// TotalDeposits sums the deposits on the client's primary account.
func (s *TransactionService) TotalDeposits(client *models.Client) (decimal.Decimal, error) {
	return s.totalFor(client, models.TransactionTypeDeposit)
}

// TotalWithdrawals sums the withdrawals on the client's primary account.
func (s *TransactionService) TotalWithdrawals(client *models.Client) (decimal.Decimal, error) {
	return s.totalFor(client, models.TransactionTypeWithdrawal)
}

// TotalTransfers sums the transfers the client's primary account
// participated in.
func (s *TransactionService) TotalTransfers(client *models.Client) (decimal.Decimal, error) {
	return s.totalFor(client, models.TransactionTypeTransfer)
}

// AllTransactions returns every transaction in the store in insertion order.
func (s *TransactionService) AllTransactions(ctx context.Context) ([]*models.Transaction, error) {
	return s.reader.FindAll(ctx)
}

// systemTotalFor sums the given type over the full store.
func (s *TransactionService) systemTotalFor(ctx context.Context, transactionType models.TransactionType) (decimal.Decimal, error) {
	transactions, err := s.reader.FindAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sumByType(transactions, transactionType), nil
}

// systemCountFor counts the given type over the full store.
func (s *TransactionService) systemCountFor(ctx context.Context, transactionType models.TransactionType) (int, error) {
	transactions, err := s.reader.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return countByType(transactions, transactionType), nil
}

// TotalSystemDeposits sums all deposit amounts in the store.
func (s *TransactionService) TotalSystemDeposits(ctx context.Context) (decimal.Decimal, error) {
	return s.systemTotalFor(ctx, models.TransactionTypeDeposit)
}

// TotalSystemWithdrawals sums all withdrawal amounts in the store.
func (s *TransactionService) TotalSystemWithdrawals(ctx context.Context) (decimal.Decimal, error) {
	return s.systemTotalFor(ctx, models.TransactionTypeWithdrawal)
}

// TotalSystemTransfers sums all transfer amounts in the store.
func (s *TransactionService) TotalSystemTransfers(ctx context.Context) (decimal.Decimal, error) {
	return s.systemTotalFor(ctx, models.TransactionTypeTransfer)
}

// TotalTransactionCount returns the number of transactions in the store.
func (s *TransactionService) TotalTransactionCount(ctx context.Context) (int, error) {
	transactions, err := s.reader.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(transactions), nil
}

// DepositCount returns the number of deposits in the store.
func (s *TransactionService) DepositCount(ctx context.Context) (int, error) {
	return s.systemCountFor(ctx, models.TransactionTypeDeposit)
}

// WithdrawalCount returns the number of withdrawals in the store.
func (s *TransactionService) WithdrawalCount(ctx context.Context) (int, error) {
	return s.systemCountFor(ctx, models.TransactionTypeWithdrawal)
}

// TransferCount returns the number of transfers in the store.
func (s *TransactionService) TransferCount(ctx context.Context) (int, error) {
	return s.systemCountFor(ctx, models.TransactionTypeTransfer)
}
