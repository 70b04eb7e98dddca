package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared"
)

// Client is the counterparty an order is sold to
type Client struct {
	shared.BaseEntity
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user_id"` // Account the client registered with
}

// User is a generic platform account, the last resort of the counterparty
// name fallback chain
type User struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// Partner is a member of the commission pool. Only active partners share the
// partner pool percentage at computation time.
type Partner struct {
	shared.BaseEntity
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ClientRepository defines the interface for client lookups
type ClientRepository interface {
	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByUser finds the client registered with the given user account
	FindByUser(ctx context.Context, userID uuid.UUID) (*Client, error)
}

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// PartnerRepository defines the interface for commission partner lookups
type PartnerRepository interface {
	// FindActive returns the current active partner roster
	FindActive(ctx context.Context) ([]Partner, error)
}
