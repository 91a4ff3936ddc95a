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
	"github.com/ysekkat/bank-ledger/internal/repositories"
)

func newAccountService() (*AccountService, *repositories.AccountRepository) {
	repo := repositories.NewAccountRepository()
	return NewAccountService(repo, repo), repo
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAccountService()
	client := &models.Client{ClientID: uuid.New(), FirstName: "Nora", LastName: "Alami", Email: "nora@bank.local"}

	account, err := svc.CreateAccount(ctx, client, models.AccountTypeSavings, decimal.NewFromInt(150))

	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeSavings, account.Type)
	assert.True(t, account.Balance().Equal(decimal.NewFromInt(150)))
	assert.Equal(t, client, account.Client())

	// Linked to the client and stored.
	accounts := client.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, account, accounts[0])

	stored, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, account, stored[0])
}

func TestAccountService_CreateAccount_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService()
	client := &models.Client{ClientID: uuid.New()}

	tests := []struct {
		name    string
		client  *models.Client
		kind    models.AccountType
		balance decimal.Decimal
		wantMsg string
	}{
		{"nil client", nil, models.AccountTypeCurrent, decimal.Zero, "client cannot be nil"},
		{"empty type", client, "", decimal.Zero, "account type cannot be empty"},
		{"negative balance", client, models.AccountTypeCurrent, decimal.NewFromInt(-1), "initial balance cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(ctx, tt.client, tt.kind, tt.balance)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	assert.Empty(t, client.Accounts())
}

func TestAccountService_CreateAccount_SaveError(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockAccountWriter(ctrl)
	writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("store unavailable"))

	svc := NewAccountService(writer, nil)
	client := &models.Client{ClientID: uuid.New()}

	_, err := svc.CreateAccount(ctx, client, models.AccountTypeCurrent, decimal.Zero)
	assert.EqualError(t, err, "store unavailable")
	// A failed save must not link the account to the client.
	assert.Empty(t, client.Accounts())
}

func TestAccountService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService()
	client := &models.Client{ClientID: uuid.New()}

	created, err := svc.CreateAccount(ctx, client, models.AccountTypeCurrent, decimal.Zero)
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.AccountID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	missing, err := svc.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountService_BalanceStatistics(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService()
	client := &models.Client{ClientID: uuid.New()}

	for _, balance := range []int64{100, 200, 300} {
		_, err := svc.CreateAccount(ctx, client, models.AccountTypeCurrent, decimal.NewFromInt(balance))
		require.NoError(t, err)
	}

	total, err := svc.TotalSystemBalance(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(600)))

	average, err := svc.AverageAccountBalance(ctx)
	require.NoError(t, err)
	assert.True(t, average.Equal(decimal.NewFromInt(200)), "average = %s", average)

	count, err := svc.TotalAccountCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAccountService_AverageAccountBalance_Empty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService()

	average, err := svc.AverageAccountBalance(ctx)
	require.NoError(t, err)
	assert.True(t, average.Equal(decimal.Zero))

	count, err := svc.TotalAccountCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
