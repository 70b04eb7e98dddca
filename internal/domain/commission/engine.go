package commission

import (
	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Settings holds the commission rates resolved once per call, never embedded
// at individual call sites. All rates are percentages of the order total.
type Settings struct {
	VendorRate      decimal.Decimal `json:"vendor_rate"`
	PartnerPoolRate decimal.Decimal `json:"partner_pool_rate"` // Split equally across active partners
}

// DefaultPartnerPoolRate is the process-wide default pool percentage
var DefaultPartnerPoolRate = decimal.NewFromInt(15)

// Engine computes commission entries for orders. It is a pure computation
// component: entries are returned, never persisted, and every entry starts
// pending — confirmation and payment transitions are driven by order
// lifecycle events elsewhere.
type Engine struct{}

// NewEngine creates a new commission engine
func NewEngine() *Engine {
	return &Engine{}
}

// ComputeForOrder computes the full commission set for one order: one vendor
// entry plus one entry per active partner, the pool rate split equally.
// No partners means no partner entries, which is not an error.
func (e *Engine) ComputeForOrder(order trade.Order, settings Settings, partnerIDs []uuid.UUID) []Entry {
	entries := e.computeVendor(order, settings)
	return append(entries, e.computePartners(order, settings, partnerIDs)...)
}

func (e *Engine) computeVendor(order trade.Order, settings Settings) []Entry {
	if order.VendorID == uuid.Nil {
		return nil
	}
	return []Entry{NewVendorEntry(order.ID, order.VendorID, order.TotalValue, settings.VendorRate)}
}

func (e *Engine) computePartners(order trade.Order, settings Settings, partnerIDs []uuid.UUID) []Entry {
	if len(partnerIDs) == 0 {
		return nil
	}
	poolRate := settings.PartnerPoolRate
	if poolRate.IsZero() {
		poolRate = DefaultPartnerPoolRate
	}
	perPartnerRate := poolRate.Div(decimal.NewFromInt(int64(len(partnerIDs))))

	entries := make([]Entry, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		entries = append(entries, NewPartnerEntry(order.ID, partnerID, order.TotalValue, perPartnerRate))
	}
	return entries
}

// presence tracks which entry kinds an order already carries. Entries of any
// status count, including cancelled ones.
type presence struct {
	vendor  bool
	partner bool
}

// RecalculateMissing generates, for each order, only the entry kinds it
// lacks; orders already carrying both kinds are left untouched. The run is
// idempotent: calling it again over the same order and entry set produces
// nothing, and a crash mid-batch leaves no inconsistent state because each
// order is decided solely by presence checks.
func (e *Engine) RecalculateMissing(orders []trade.Order, existing []Entry, settings Settings, partnerIDs []uuid.UUID) []Entry {
	present := make(map[uuid.UUID]*presence, len(orders))
	for i := range existing {
		p := present[existing[i].OrderID]
		if p == nil {
			p = &presence{}
			present[existing[i].OrderID] = p
		}
		switch existing[i].Type {
		case EntryTypeVendor:
			p.vendor = true
		case EntryTypePartner:
			p.partner = true
		}
	}

	var created []Entry
	for _, order := range orders {
		p := present[order.ID]
		if p == nil {
			p = &presence{}
		}
		if !p.vendor {
			created = append(created, e.computeVendor(order, settings)...)
		}
		if !p.partner {
			created = append(created, e.computePartners(order, settings, partnerIDs)...)
		}
	}
	return created
}
