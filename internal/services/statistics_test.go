package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysekkat/bank-ledger/internal/models"
)

// newTestClient builds a client with one primary account seeded with the
// given balance.
func newTestClient(balance int64) (*models.Client, *models.Account) {
	client := &models.Client{ClientID: uuid.New(), FirstName: "Test", LastName: "Client", Email: "stats@bank.local"}
	account := models.NewAccount(client, models.AccountTypeCurrent, decimal.NewFromInt(balance))
	client.AddAccount(account)
	return client, account
}

func TestTransactionService_ClientTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	client, account := newTestClient(10000)

	for i := 0; i < 5; i++ {
		_, err := svc.Deposit(ctx, account, decimal.NewFromInt(100), "")
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.Withdraw(ctx, account, decimal.NewFromInt(50), "")
		require.NoError(t, err)
	}

	deposits, err := svc.TotalDeposits(client)
	require.NoError(t, err)
	assert.True(t, deposits.Equal(decimal.NewFromInt(500)), "deposits = %s", deposits)

	withdrawals, err := svc.TotalWithdrawals(client)
	require.NoError(t, err)
	assert.True(t, withdrawals.Equal(decimal.NewFromInt(100)), "withdrawals = %s", withdrawals)

	transfers, err := svc.TotalTransfers(client)
	require.NoError(t, err)
	assert.True(t, transfers.Equal(decimal.Zero))
}

func TestTransactionService_TotalsUsePrimaryAccountOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	client, primary := newTestClient(0)

	// A second account's activity must not show up in per-client reporting.
	secondary := models.NewAccount(client, models.AccountTypeSavings, decimal.Zero)
	client.AddAccount(secondary)

	_, err := svc.Deposit(ctx, primary, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, secondary, decimal.NewFromInt(999), "")
	require.NoError(t, err)

	deposits, err := svc.TotalDeposits(client)
	require.NoError(t, err)
	assert.True(t, deposits.Equal(decimal.NewFromInt(100)), "deposits = %s", deposits)

	transactions, err := svc.TransactionsOf(client)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestTransactionService_TransactionsOf_SortedAscending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	client, account := newTestClient(10000)

	amounts := []int64{10, 20, 30, 40}
	for _, amount := range amounts {
		_, err := svc.Deposit(ctx, account, decimal.NewFromInt(amount), "")
		require.NoError(t, err)
	}

	transactions, err := svc.TransactionsOf(client)
	require.NoError(t, err)
	require.Len(t, transactions, len(amounts))
	for i := 1; i < len(transactions); i++ {
		assert.False(t, transactions[i].Timestamp.Before(transactions[i-1].Timestamp))
	}
	// Stable sort keeps insertion order for equal timestamps.
	for i, amount := range amounts {
		assert.True(t, transactions[i].Amount.Equal(decimal.NewFromInt(amount)))
	}
}

func TestTransactionService_SortTransactionsByDate_Directions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	client, account := newTestClient(10000)

	for i := 0; i < 5; i++ {
		_, err := svc.Deposit(ctx, account, decimal.NewFromInt(int64(i+1)), "")
		require.NoError(t, err)
	}

	ascending, err := svc.SortTransactionsByDate(client, true)
	require.NoError(t, err)
	descending, err := svc.SortTransactionsByDate(client, false)
	require.NoError(t, err)

	require.Len(t, descending, len(ascending))
	for i := range ascending {
		assert.Equal(t, ascending[i], descending[len(descending)-1-i])
	}

	// Sorting must not mutate the underlying history.
	history := account.Transactions()
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}

func TestTransactionService_FilterTransactions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	client, account := newTestClient(10000)

	for _, amount := range []int64{5, 100, 7, 200, 9} {
		_, err := svc.Deposit(ctx, account, decimal.NewFromInt(amount), "")
		require.NoError(t, err)
	}

	big, err := svc.FilterTransactions(client, func(txn *models.Transaction) bool {
		return txn.Amount.GreaterThanOrEqual(decimal.NewFromInt(100))
	})
	require.NoError(t, err)
	require.Len(t, big, 2)
	// Order preserved.
	assert.True(t, big[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, big[1].Amount.Equal(decimal.NewFromInt(200)))

	_, err = svc.FilterTransactions(client, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTransactionService_PrimaryAccountErrors(t *testing.T) {
	svc, _ := newTestEngine()

	_, err := svc.TotalDeposits(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	clientWithoutAccounts := &models.Client{ClientID: uuid.New()}
	_, err = svc.TransactionsOf(clientWithoutAccounts)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "client has no accounts")
}

func TestTransactionService_SystemAggregates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestEngine()
	_, a := newTestClient(10000)
	_, b := newTestClient(10000)

	_, err := svc.Deposit(ctx, a, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, b, decimal.NewFromInt(300), "")
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, a, decimal.NewFromInt(50), "")
	require.NoError(t, err)
	_, err = svc.Transfer(ctx, a, b, decimal.NewFromInt(25), "")
	require.NoError(t, err)

	deposits, err := svc.TotalSystemDeposits(ctx)
	require.NoError(t, err)
	assert.True(t, deposits.Equal(decimal.NewFromInt(400)))

	withdrawals, err := svc.TotalSystemWithdrawals(ctx)
	require.NoError(t, err)
	assert.True(t, withdrawals.Equal(decimal.NewFromInt(50)))

	transfers, err := svc.TotalSystemTransfers(ctx)
	require.NoError(t, err)
	assert.True(t, transfers.Equal(decimal.NewFromInt(25)))

	total, err := svc.TotalTransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	depositCount, err := svc.DepositCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, depositCount)

	withdrawalCount, err := svc.WithdrawalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, withdrawalCount)

	transferCount, err := svc.TransferCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, transferCount)

	all, err := svc.AllTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTransactionService_SystemAggregates_ReadError(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockTransactionReader(ctrl)
	reader.EXPECT().FindAll(ctx).Return(nil, errors.New("store scan failed")).Times(3)

	svc := NewTransactionService(nil, reader)

	_, err := svc.TotalSystemDeposits(ctx)
	assert.EqualError(t, err, "store scan failed")

	_, err = svc.DepositCount(ctx)
	assert.EqualError(t, err, "store scan failed")

	_, err = svc.TotalTransactionCount(ctx)
	assert.EqualError(t, err, "store scan failed")
}
