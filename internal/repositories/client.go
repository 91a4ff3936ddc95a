package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
)

// ClientRepository is the in-memory client store.
type ClientRepository struct {
	mu      deadlock.RWMutex
	clients []*models.Client
}

// NewClientRepository creates an empty client store.
func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// Save stores a client. Saving an already stored client is a no-op.
func (r *ClientRepository) Save(ctx context.Context, client *models.Client) error {
	if client == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ClientID == client.ClientID {
			return nil
		}
	}
	r.clients = append(r.clients, client)

	logger.Log.Debugw("client saved", "client_id", client.ClientID, "email", client.Email)
	return nil
}

// GetByEmail returns the client with the given email, or nil when no such
// client exists. Email comparison is case-insensitive.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}

// FindAll returns a copy of all stored clients in insertion order.
func (r *ClientRepository) FindAll(ctx context.Context) ([]*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Client, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

// Delete removes the client with the given id. Deleting an unknown id is a
// no-op.
func (r *ClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.clients {
		if c.ClientID == clientID {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			logger.Log.Debugw("client deleted", "client_id", clientID)
			return nil
		}
	}
	return nil
}
