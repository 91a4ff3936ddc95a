package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ysekkat/bank-ledger/internal/models"
)

func hashedClient(t *testing.T, email, password string) *models.Client {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Client{
		ClientID:     uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := hashedClient(t, "nora@bank.local", "secret123")

	reader := NewMockClientReader(ctrl)
	reader.EXPECT().GetByEmail(ctx, "nora@bank.local").Return(client, nil)

	generator := NewMockTokenGenerator(ctrl)
	generator.EXPECT().Generate(ctx, client.ClientID).Return("signed-token", nil)

	svc := NewAuthService(reader, generator)
	token, err := svc.Login(ctx, "nora@bank.local", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestAuthService_Login_Errors(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := hashedClient(t, "nora@bank.local", "secret123")

	reader := NewMockClientReader(ctrl)
	generator := NewMockTokenGenerator(ctrl)
	svc := NewAuthService(reader, generator)

	// Unknown client
	reader.EXPECT().GetByEmail(ctx, "ghost@bank.local").Return(nil, nil)
	_, err := svc.Login(ctx, "ghost@bank.local", "whatever")
	assert.ErrorIs(t, err, ErrClientDoesNotExist)

	// Wrong password
	reader.EXPECT().GetByEmail(ctx, "nora@bank.local").Return(client, nil)
	_, err = svc.Login(ctx, "nora@bank.local", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Store failure
	reader.EXPECT().GetByEmail(ctx, "nora@bank.local").Return(nil, errors.New("lookup failed"))
	_, err = svc.Login(ctx, "nora@bank.local", "secret123")
	assert.EqualError(t, err, "lookup failed")

	// Token generation failure
	reader.EXPECT().GetByEmail(ctx, "nora@bank.local").Return(client, nil)
	generator.EXPECT().Generate(ctx, client.ClientID).Return("", errors.New("signing failed"))
	_, err = svc.Login(ctx, "nora@bank.local", "secret123")
	assert.EqualError(t, err, "signing failed")
}
