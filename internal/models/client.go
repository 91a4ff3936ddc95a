package models

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Client owns an ordered set of accounts. The first account is the client's
// primary account and is the subject of all per-client reporting.
type Client struct {
	ClientID     uuid.UUID `json:"client_id"`  // Unique identifier of the client
	FirstName    string    `json:"first_name"` // Validated by the client service
	LastName     string    `json:"last_name"`  // Validated by the client service
	Email        string    `json:"email"`      // Unique login identifier
	PasswordHash string    `json:"-"`          // bcrypt hash, set by the client service

	mu       deadlock.RWMutex
	accounts []*Account
}

// Accounts returns a copy of the client's accounts in creation order.
func (c *Client) Accounts() []*Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// AddAccount appends an account to the client's account list. Reserved for
// the account service.
func (c *Client) AddAccount(account *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, account)
}

// FullName returns the client's display name.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
