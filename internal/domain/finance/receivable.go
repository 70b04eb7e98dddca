package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/promogoods/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the status of a receivable
type ReceivableStatus string

const (
	ReceivableStatusOpen       ReceivableStatus = "OPEN"
	ReceivableStatusMatched    ReceivableStatus = "MATCHED"
	ReceivableStatusWrittenOff ReceivableStatus = "WRITTEN_OFF"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	return s == ReceivableStatusOpen || s == ReceivableStatusMatched || s == ReceivableStatusWrittenOff
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// Receivable is an expected incoming payment tied to one order, open until
// matched against a bank movement or written off.
type Receivable struct {
	shared.BaseEntity
	OrderID        uuid.UUID        `json:"order_id"`
	ExpectedAmount decimal.Decimal  `json:"expected_amount"`
	DueDate        time.Time        `json:"due_date"`
	Status         ReceivableStatus `json:"status"`

	MatchedTransactionID string     `json:"matched_transaction_id,omitempty"`
	MatchedAt            *time.Time `json:"matched_at,omitempty"`
	WriteOffReason       string     `json:"write_off_reason,omitempty"`
	WrittenOffAt         *time.Time `json:"written_off_at,omitempty"`
}

// NewReceivable creates an open receivable for an order
func NewReceivable(orderID uuid.UUID, expectedAmount decimal.Decimal, dueDate time.Time) (*Receivable, error) {
	if !expectedAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receivable expected amount must be positive")
	}
	return &Receivable{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        orderID,
		ExpectedAmount: expectedAmount,
		DueDate:        dueDate,
		Status:         ReceivableStatusOpen,
	}, nil
}

// IsOpen returns true if the receivable can still be matched
func (r *Receivable) IsOpen() bool {
	return r.Status == ReceivableStatusOpen
}

// MarkMatched records a confirmed reconciliation against a bank transaction.
// The settled amount must equal the expected amount on rounded-to-cent
// values; partial settlement is handled by payment confirmation elsewhere.
func (r *Receivable) MarkMatched(transactionID string, amount valueobject.Money) error {
	if !r.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Only open receivables can be matched")
	}
	expected := valueobject.NewMoneyBRL(r.ExpectedAmount).RoundCents()
	if !amount.RoundCents().Equals(expected) {
		return shared.NewDomainError("INVALID_INPUT", "Matched amount does not equal the expected amount")
	}

	now := time.Now()
	r.Status = ReceivableStatusMatched
	r.MatchedTransactionID = transactionID
	r.MatchedAt = &now
	r.UpdatedAt = now
	return nil
}

// WriteOff abandons collection of an open receivable
func (r *Receivable) WriteOff(reason string) error {
	if !r.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Only open receivables can be written off")
	}

	now := time.Now()
	r.Status = ReceivableStatusWrittenOff
	r.WriteOffReason = reason
	r.WrittenOffAt = &now
	r.UpdatedAt = now
	return nil
}
