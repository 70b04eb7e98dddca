package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Process-wide default rates, used when no tier matches the target revenue
// and when no pricing settings were configured. All rates are percentages.
var (
	DefaultTaxRate           = decimal.NewFromInt(9)
	DefaultCommissionRate    = decimal.NewFromInt(15)
	DefaultMarginRate        = decimal.NewFromInt(28)
	DefaultMinimumMarginRate = decimal.NewFromInt(20)
)

// Settings holds the percentage rates applied before margin when deriving a
// sale price from cost. A zero-value Settings means "not configured" and
// disables cost-based pricing entirely (the caller falls back to base price).
type Settings struct {
	TaxRate        decimal.Decimal `json:"tax_rate"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// DefaultSettings returns the process-wide default pricing settings
func DefaultSettings() Settings {
	return Settings{
		TaxRate:        DefaultTaxRate,
		CommissionRate: DefaultCommissionRate,
	}
}

// IsZero reports whether the settings were never configured
func (s Settings) IsZero() bool {
	return s.TaxRate.IsZero() && s.CommissionRate.IsZero()
}

// MarginTier is a revenue bracket with an associated target and minimum
// profit margin. MaxRevenue nil means the bracket is open-ended above.
type MarginTier struct {
	MinRevenue        decimal.Decimal  `json:"min_revenue"`
	MaxRevenue        *decimal.Decimal `json:"max_revenue,omitempty"`
	MarginRate        decimal.Decimal  `json:"margin_rate"`
	MinimumMarginRate decimal.Decimal  `json:"minimum_margin_rate"`
	Order             *int             `json:"order,omitempty"` // Explicit ranking hint
}

// Contains reports whether the target revenue falls inside the bracket,
// inclusive on both bounds.
func (t MarginTier) Contains(revenue decimal.Decimal) bool {
	if revenue.LessThan(t.MinRevenue) {
		return false
	}
	if t.MaxRevenue != nil && revenue.GreaterThan(*t.MaxRevenue) {
		return false
	}
	return true
}

// SortTiers returns the tiers in canonical order without mutating the input.
// When every tier carries an explicit Order hint it is the sole sort key;
// otherwise tiers sort ascending by MinRevenue.
func SortTiers(tiers []MarginTier) []MarginTier {
	sorted := make([]MarginTier, len(tiers))
	copy(sorted, tiers)

	allOrdered := len(sorted) > 0
	for _, t := range sorted {
		if t.Order == nil {
			allOrdered = false
			break
		}
	}

	if allOrdered {
		sort.SliceStable(sorted, func(i, j int) bool {
			return *sorted[i].Order < *sorted[j].Order
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinRevenue.LessThan(sorted[j].MinRevenue)
		})
	}
	return sorted
}

// PickTierForRevenue selects the first tier in canonical order whose bracket
// contains the target revenue. Tiers may overlap in misconfigured setups;
// first match in sorted order wins. Returns nil when nothing matches and the
// caller falls through to the process-wide default margins.
func PickTierForRevenue(tiers []MarginTier, targetRevenue decimal.Decimal) *MarginTier {
	for _, tier := range SortTiers(tiers) {
		if tier.Contains(targetRevenue) {
			picked := tier
			return &picked
		}
	}
	return nil
}
