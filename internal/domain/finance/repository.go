package finance

import (
	"context"

	"github.com/google/uuid"
)

// ReceivableRepository defines the interface for receivable persistence
type ReceivableRepository interface {
	// FindByID finds a receivable by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)

	// FindOpen returns all receivables still awaiting settlement
	FindOpen(ctx context.Context) ([]*Receivable, error)

	// FindByOrder returns the receivables tied to an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Receivable, error)

	// Save creates or updates a receivable
	Save(ctx context.Context, receivable *Receivable) error
}
