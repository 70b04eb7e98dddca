package statement

import (
	"context"
	"time"
)

// ImportRecord is the audit trail row written for every transaction accepted
// from a statement upload. The persistence collaborator enforces uniqueness
// of (account_ref, external_id) so repeated uploads of overlapping periods
// never double-import a movement.
type ImportRecord struct {
	AccountRef     string    `json:"account_ref"`
	ExternalID     string    `json:"external_id"`
	PostedAt       time.Time `json:"posted_at"`
	Amount         string    `json:"amount"`
	Classification string    `json:"classification"` // matched | ambiguous | unmatched
	ImportedAt     time.Time `json:"imported_at"`
}

// ImportLogRepository defines the interface for statement import audit persistence
type ImportLogRepository interface {
	// Exists reports whether a transaction was already imported for the account
	Exists(ctx context.Context, accountRef, externalID string) (bool, error)

	// Record appends an import audit record
	Record(ctx context.Context, record ImportRecord) error
}
