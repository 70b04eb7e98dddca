package commission

import (
	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryType identifies who the commission belongs to
type EntryType string

const (
	EntryTypeVendor  EntryType = "VENDOR"
	EntryTypePartner EntryType = "PARTNER"
)

// IsValid checks if the type is a valid EntryType
func (t EntryType) IsValid() bool {
	return t == EntryTypeVendor || t == EntryTypePartner
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// EntryStatus represents the lifecycle status of a commission entry
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusConfirmed EntryStatus = "CONFIRMED"
	EntryStatusPaid      EntryStatus = "PAID"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// IsValid checks if the status is a valid EntryStatus
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusConfirmed, EntryStatusPaid, EntryStatusCancelled:
		return true
	}
	return false
}

// Entry is a commission owed to one beneficiary for one order.
// Percentage records the effective rate applied at computation time — for a
// partner entry that is the pool rate already divided by the partner count,
// so historical allocations stay explicit when the roster changes later.
type Entry struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `json:"order_id"`
	BeneficiaryID uuid.UUID       `json:"beneficiary_id"`
	Type          EntryType       `json:"type"`
	Percentage    decimal.Decimal `json:"percentage"`
	Amount        decimal.Decimal `json:"amount"`
	Status        EntryStatus     `json:"status"`
}

// newEntry creates a pending entry with the amount derived from the order
// total and the effective rate, rounded half-up to cents at the final step.
func newEntry(orderID, beneficiaryID uuid.UUID, entryType EntryType, totalValue, rate decimal.Decimal) Entry {
	return Entry{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		BeneficiaryID: beneficiaryID,
		Type:          entryType,
		Percentage:    rate,
		Amount:        totalValue.Mul(rate).Div(decimal.NewFromInt(100)).Round(2),
		Status:        EntryStatusPending,
	}
}

// NewVendorEntry creates the pending vendor commission for an order
func NewVendorEntry(orderID, vendorID uuid.UUID, totalValue, vendorRate decimal.Decimal) Entry {
	return newEntry(orderID, vendorID, EntryTypeVendor, totalValue, vendorRate)
}

// NewPartnerEntry creates one pending partner commission. perPartnerRate is
// the pool percentage already divided by the active partner count.
func NewPartnerEntry(orderID, partnerID uuid.UUID, totalValue, perPartnerRate decimal.Decimal) Entry {
	return newEntry(orderID, partnerID, EntryTypePartner, totalValue, perPartnerRate)
}

// IsCancelled returns true if the entry was cancelled. A cancelled entry is
// a deliberate historical record: it still counts as "present" for the
// idempotent recomputation presence checks.
func (e *Entry) IsCancelled() bool {
	return e.Status == EntryStatusCancelled
}

// Confirm transitions a pending entry to confirmed
func (e *Entry) Confirm() error {
	if e.Status != EntryStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending commission entries can be confirmed")
	}
	e.Status = EntryStatusConfirmed
	return nil
}

// MarkPaid transitions a confirmed entry to paid
func (e *Entry) MarkPaid() error {
	if e.Status != EntryStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed commission entries can be marked paid")
	}
	e.Status = EntryStatusPaid
	return nil
}

// Cancel transitions an unpaid entry to cancelled
func (e *Entry) Cancel() error {
	if e.Status == EntryStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid commission entries cannot be cancelled")
	}
	if e.Status == EntryStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Commission entry is already cancelled")
	}
	e.Status = EntryStatusCancelled
	return nil
}
