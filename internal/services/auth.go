package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ysekkat/bank-ledger/internal/logger"
)

// Error variables
var (
	ErrClientDoesNotExist = errors.New("client does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenGenerator defines an interface for generating session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, clientID uuid.UUID) (string, error)
}

// AuthService authenticates clients. It is a thin collaborator around the
// ledger core; the seeded credential comes from configuration, never from a
// hardcoded value.
type AuthService struct {
	reader ClientReader
	jwt    TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader ClientReader, jwt TokenGenerator) *AuthService {
	return &AuthService{reader: reader, jwt: jwt}
}

// Login authenticates a client by email and password and returns a signed
// session token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	client, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get client", "email", email, "error", err)
		return "", err
	}
	if client == nil {
		logger.Log.Errorw("client does not exist", "email", email)
		return "", ErrClientDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, client.ClientID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "error", err)
		return "", err
	}

	return token, nil
}
