package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysekkat/bank-ledger/internal/models"
)

func testClient(email string) *models.Client {
	return &models.Client{
		ClientID:  uuid.New(),
		FirstName: "Test",
		LastName:  "Client",
		Email:     email,
	}
}

func TestClientRepository_SaveAndGetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository()

	client := testClient("Nora@Bank.Local")
	require.NoError(t, repo.Save(ctx, client))

	// Lookup is case-insensitive.
	found, err := repo.GetByEmail(ctx, "nora@bank.local")
	require.NoError(t, err)
	assert.Equal(t, client, found)

	missing, err := repo.GetByEmail(ctx, "ghost@bank.local")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClientRepository_Save_IdempotentPerClient(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository()

	client := testClient("a@bank.local")
	require.NoError(t, repo.Save(ctx, client))
	require.NoError(t, repo.Save(ctx, client))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestClientRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository()

	first := testClient("a@bank.local")
	second := testClient("b@bank.local")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	require.NoError(t, repo.Delete(ctx, first.ClientID))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second, all[0])

	// Deleting an unknown id is a no-op.
	assert.NoError(t, repo.Delete(ctx, uuid.New()))
}
