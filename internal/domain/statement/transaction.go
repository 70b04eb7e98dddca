package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a bank movement by the sign of its amount
type TransactionKind string

const (
	TransactionKindCredit TransactionKind = "CREDIT" // Amount >= 0
	TransactionKindDebit  TransactionKind = "DEBIT"  // Amount < 0
)

// IsValid checks if the kind is a valid TransactionKind
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindCredit || k == TransactionKindDebit
}

// String returns the string representation of TransactionKind
func (k TransactionKind) String() string {
	return string(k)
}

// BankTransaction is a single movement extracted from a bank statement export.
// It is immutable once parsed; ExternalID is the sole de-duplication key
// across repeated imports of overlapping statement periods.
type BankTransaction struct {
	ExternalID  string          `json:"external_id"`
	PostedAt    time.Time       `json:"posted_at"`
	Amount      decimal.Decimal `json:"amount"` // Signed; positive = credit
	Description string          `json:"description"`
	Kind        TransactionKind `json:"kind"`
	RawType     string          `json:"raw_type,omitempty"` // Statement-native type code
}

// IsCredit returns true for incoming movements
func (t BankTransaction) IsCredit() bool {
	return t.Kind == TransactionKindCredit
}
