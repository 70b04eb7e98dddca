package finance

import (
	"time"

	"github.com/promogoods/backend/internal/domain/shared/valueobject"
	"github.com/promogoods/backend/internal/domain/statement"
)

// DefaultDayTolerance is the default settlement window around a receivable's
// due date, in days, on each side.
const DefaultDayTolerance = 3

// Reconciler matches parsed bank transactions against outstanding
// receivables. Matching is pure computation over its inputs except for the
// status transition applied to confirmed matches.
type Reconciler struct {
	dayTolerance int
}

// ReconcilerOption is a functional option for configuring Reconciler
type ReconcilerOption func(*Reconciler)

// WithDayTolerance sets the settlement window half-width in days
func WithDayTolerance(days int) ReconcilerOption {
	return func(r *Reconciler) {
		if days >= 0 {
			r.dayTolerance = days
		}
	}
}

// NewReconciler creates a reconciler with optional configuration
func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{dayTolerance: DefaultDayTolerance}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Match pairs a transaction with the single receivable it settled
type Match struct {
	Transaction statement.BankTransaction
	Receivable  *Receivable
}

// Result classifies every transaction of a reconciliation run.
// Ambiguous transactions had more than one candidate receivable and are
// never auto-resolved; they require an external decision.
type Result struct {
	Matched   []Match
	Ambiguous []statement.BankTransaction
	Unmatched []statement.BankTransaction
}

// Reconcile classifies each transaction against the open receivables.
//
// A receivable is a candidate when the amounts are equal on rounded-to-cent
// values and the posting date falls inside the due-date window. Exactly one
// candidate confirms a match and transitions the receivable to matched;
// matched receivables are not re-offered to later transactions in the same
// run, so duplicate candidates of equal suitability resolve first-come in
// input order. Re-running over the same unmodified inputs reproduces the
// same classification.
func (r *Reconciler) Reconcile(transactions []statement.BankTransaction, receivables []*Receivable) *Result {
	result := &Result{
		Matched:   []Match{},
		Ambiguous: []statement.BankTransaction{},
		Unmatched: []statement.BankTransaction{},
	}

	claimed := make(map[*Receivable]bool)

	for _, tx := range transactions {
		var candidates []*Receivable
		for _, rcv := range receivables {
			if claimed[rcv] || !rcv.IsOpen() {
				continue
			}
			if r.isCandidate(tx, rcv) {
				candidates = append(candidates, rcv)
			}
		}

		switch len(candidates) {
		case 0:
			result.Unmatched = append(result.Unmatched, tx)
		case 1:
			rcv := candidates[0]
			if err := rcv.MarkMatched(tx.ExternalID, valueobject.NewMoneyBRL(tx.Amount)); err != nil {
				// Candidate filtering guarantees amount equality and open
				// status, so this only fires on a broken invariant.
				result.Unmatched = append(result.Unmatched, tx)
				continue
			}
			claimed[rcv] = true
			result.Matched = append(result.Matched, Match{Transaction: tx, Receivable: rcv})
		default:
			result.Ambiguous = append(result.Ambiguous, tx)
		}
	}

	return result
}

// isCandidate applies the matching policy: zero-tolerance cent equality on
// amounts plus the configurable posting-date window.
func (r *Reconciler) isCandidate(tx statement.BankTransaction, rcv *Receivable) bool {
	if !tx.Amount.Round(2).Equal(rcv.ExpectedAmount.Round(2)) {
		return false
	}
	return withinDays(tx.PostedAt, rcv.DueDate, r.dayTolerance)
}

// withinDays compares the calendar-date distance between two instants
func withinDays(a, b time.Time, days int) bool {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	diff := da.Sub(db)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours()/24) <= days
}
