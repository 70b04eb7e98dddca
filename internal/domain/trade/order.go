package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProduction OrderStatus = "PRODUCTION"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProduction,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the order is in a terminal state
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is a promotional-goods order. It drives commission computation and
// financial enrichment; the persistence collaborator owns its storage.
type Order struct {
	shared.BaseEntity
	ClientID          uuid.UUID       `json:"client_id"`
	UserID            uuid.UUID       `json:"user_id"` // Account that placed the order
	VendorID          uuid.UUID       `json:"vendor_id"`
	ProductID         uuid.UUID       `json:"product_id"`
	BudgetID          uuid.UUID       `json:"budget_id"`
	ProductionOrderID *uuid.UUID      `json:"production_order_id,omitempty"`
	ContactName       string          `json:"contact_name"` // Explicit counterparty name, may be empty
	TotalValue        decimal.Decimal `json:"total_value"`
	Status            OrderStatus     `json:"status"`
	TrackingCode      string          `json:"tracking_code,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusConfirmed || s == PaymentStatusFailed
}

// Payment is money received against an order. Only confirmed payments count
// toward the paid balance.
type Payment struct {
	shared.BaseEntity
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Status  PaymentStatus   `json:"status"`
}

// IsConfirmed returns true if the payment counts toward the paid balance
func (p Payment) IsConfirmed() bool {
	return p.Status == PaymentStatusConfirmed
}

// Budget holds the negotiated totals an order was created from
type Budget struct {
	shared.BaseEntity
	DownPayment decimal.Decimal `json:"down_payment"`
	Total       decimal.Decimal `json:"total"`
}
