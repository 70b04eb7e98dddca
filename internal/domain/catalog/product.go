package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a catalog item offered to clients. CostPrice feeds the pricing
// calculator; BasePrice is the directly configured fallback sale price used
// when the cost is unknown or unusable.
type Product struct {
	shared.BaseEntity
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// HasValidCost reports whether the cost can drive cost-based pricing.
// A zero or negative cost is treated as "cost unknown", never "cost is zero".
func (p Product) HasValidCost() bool {
	return p.CostPrice.IsPositive()
}

// ProductRepository defines the interface for product lookups
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
