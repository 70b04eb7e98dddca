package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order reads
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns all orders (used by bulk commission recomputation)
	FindAll(ctx context.Context) ([]Order, error)
}

// PaymentRepository defines the interface for payment reads
type PaymentRepository interface {
	// FindConfirmedByOrder returns the confirmed payments for an order
	FindConfirmedByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)
}

// BudgetRepository defines the interface for budget reads
type BudgetRepository interface {
	// FindByID finds a budget by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
}

// NoteRepository defines the interface for order note reads
type NoteRepository interface {
	// CountUnreadByOrder counts unread notes attached to an order
	CountUnreadByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}
