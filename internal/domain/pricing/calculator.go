package pricing

import (
	"github.com/promogoods/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is the result of deriving a sale price from cost. An all-zero Quote
// means cost-based pricing was not possible (missing cost, missing settings,
// or rates summing to 100% and above); callers fall back to the base price.
type Quote struct {
	IdealPrice           decimal.Decimal `json:"ideal_price"`
	MinimumPrice         decimal.Decimal `json:"minimum_price"`
	MarginApplied        decimal.Decimal `json:"margin_applied"`
	MinimumMarginApplied decimal.Decimal `json:"minimum_margin_applied"`
}

// IsZero reports whether the quote carries no usable price
func (q Quote) IsZero() bool {
	return q.IdealPrice.IsZero() && q.MinimumPrice.IsZero()
}

// PriceSource identifies which field produced the resolved sale price
type PriceSource string

const (
	PriceSourceComputed PriceSource = "computed" // Derived from cost
	PriceSourceBase     PriceSource = "base"     // Directly configured base price
	PriceSourceNone     PriceSource = "none"     // Nothing resolvable
)

// ResolvedPrice is the outcome of the sale price fallback chain
type ResolvedPrice struct {
	Price  decimal.Decimal `json:"price"`
	Source PriceSource     `json:"source"`
}

// PriceFromCost derives the ideal and minimum acceptable sale price for a
// cost at a target revenue bracket.
//
//	idealPrice = costPrice / (1 - (tax + commission + margin)/100)
//
// with the minimum price using the tier's minimum margin instead. Money
// values are rounded half-up to 2 decimal places at the final step only.
//
// A non-positive cost or unconfigured settings yields an all-zero Quote by
// policy: a missing cost must never block pricing, the caller falls back to
// the configured base price instead.
func PriceFromCost(costPrice, targetRevenue decimal.Decimal, settings Settings, tiers []MarginTier) Quote {
	if !costPrice.IsPositive() || settings.IsZero() {
		return Quote{}
	}

	margin := DefaultMarginRate
	minimumMargin := DefaultMinimumMarginRate
	if tier := PickTierForRevenue(tiers, targetRevenue); tier != nil {
		margin = tier.MarginRate
		minimumMargin = tier.MinimumMarginRate
	}

	return Quote{
		IdealPrice:           priceWithMargin(costPrice, settings, margin),
		MinimumPrice:         priceWithMargin(costPrice, settings, minimumMargin),
		MarginApplied:        margin,
		MinimumMarginApplied: minimumMargin,
	}
}

// priceWithMargin applies the divisor formula for one margin rate. A divisor
// of zero or below means the rates sum to 100% or more; that is a
// configuration error upstream and yields 0 rather than a negative or
// unbounded price.
func priceWithMargin(costPrice decimal.Decimal, settings Settings, marginRate decimal.Decimal) decimal.Decimal {
	rateSum := settings.TaxRate.Add(settings.CommissionRate).Add(marginRate).Div(oneHundred)
	divisor := decimal.NewFromInt(1).Sub(rateSum)
	if !divisor.IsPositive() {
		return decimal.Zero
	}
	return costPrice.Div(divisor).Round(2)
}

// ResolveSalePrice resolves the sale price for a product: the computed ideal
// price when the cost is valid and produces one, otherwise the configured
// base price, otherwise zero. A zero or invalid cost means "cost unknown",
// never "cost equals zero" — pricing from it would compound markup on a
// field mistakenly populated with an already-marked-up value.
func ResolveSalePrice(product catalog.Product, targetRevenue decimal.Decimal, settings Settings, tiers []MarginTier) ResolvedPrice {
	if product.HasValidCost() {
		quote := PriceFromCost(product.CostPrice, targetRevenue, settings, tiers)
		if quote.IdealPrice.IsPositive() {
			return ResolvedPrice{Price: quote.IdealPrice, Source: PriceSourceComputed}
		}
	}

	if product.BasePrice.IsPositive() {
		return ResolvedPrice{Price: product.BasePrice.Round(2), Source: PriceSourceBase}
	}

	return ResolvedPrice{Price: decimal.Zero, Source: PriceSourceNone}
}
