package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
	"github.com/ysekkat/bank-ledger/internal/validation"
)

// ErrEmailAlreadyExists is returned when registering a client with an email
// that is already taken.
var ErrEmailAlreadyExists = errors.New("email already exists")

// ClientReader defines read operations on the client store.
type ClientReader interface {
	GetByEmail(ctx context.Context, email string) (*models.Client, error) // Returns the client with the email, or nil
	FindAll(ctx context.Context) ([]*models.Client, error)                // Returns all clients in insertion order
}

// ClientWriter defines write operations on the client store.
type ClientWriter interface {
	Save(ctx context.Context, client *models.Client) error // Stores one client
	Delete(ctx context.Context, clientID uuid.UUID) error  // Removes the client with the id
}

// ClientService handles client registration and administration. It is a thin
// collaborator around the ledger core.
type ClientService struct {
	reader ClientReader
	writer ClientWriter
}

// NewClientService creates a new ClientService.
func NewClientService(reader ClientReader, writer ClientWriter) *ClientService {
	return &ClientService{reader: reader, writer: writer}
}

// CreateClient validates the fields, rejects duplicate emails, hashes the
// password with bcrypt and stores the new client.
func (s *ClientService) CreateClient(ctx context.Context, firstName, lastName, email, password string) (*models.Client, error) {
	if !validation.IsValidName(firstName) {
		return nil, invalidArgumentf("invalid first name")
	}
	if !validation.IsValidName(lastName) {
		return nil, invalidArgumentf("invalid last name")
	}
	if !validation.IsValidEmail(email) {
		return nil, invalidArgumentf("invalid email format")
	}
	if !validation.IsValidPassword(password) {
		return nil, invalidArgumentf("invalid password - must be at least 6 characters")
	}

	existing, err := s.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check client exists", "email", email, "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("client already exists", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	client := &models.Client{
		ClientID:     uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.writer.Save(ctx, client); err != nil {
		logger.Log.Errorw("failed to save client", "email", email, "error", err)
		return nil, err
	}

	logger.Log.Infow("client created", "client_id", client.ClientID, "email", email)
	return client, nil
}

// GetByEmail returns the client with the given email, or nil when unknown.
func (s *ClientService) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return s.reader.GetByEmail(ctx, email)
}

// ListClients returns all registered clients.
func (s *ClientService) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.reader.FindAll(ctx)
}

// DeleteClient removes the client with the given id.
func (s *ClientService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	return s.writer.Delete(ctx, clientID)
}
