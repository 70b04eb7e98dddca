package pricing

import (
	"context"
	"fmt"

	"github.com/promogoods/backend/internal/domain/catalog"
	"github.com/promogoods/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuoteService resolves pricing configuration and derives sale prices for
// products at quote time. Rates are resolved once per call; no call site
// embeds its own defaults.
type QuoteService struct {
	tiers    pricing.MarginTierRepository
	settings pricing.SettingsRepository
	logger   *zap.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	tiers pricing.MarginTierRepository,
	settings pricing.SettingsRepository,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		tiers:    tiers,
		settings: settings,
		logger:   logger,
	}
}

// ProductQuote is the full pricing outcome for one product
type ProductQuote struct {
	Quote  pricing.Quote       `json:"quote"`
	Price  decimal.Decimal     `json:"price"`
	Source pricing.PriceSource `json:"source"`
}

// QuoteProduct derives the sale price for a product at a target revenue.
// A product whose cost cannot produce a price falls back visibly to its
// base price rather than failing.
func (s *QuoteService) QuoteProduct(ctx context.Context, product catalog.Product, targetRevenue decimal.Decimal) (*ProductQuote, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing settings: %w", err)
	}
	if settings.IsZero() {
		settings = pricing.DefaultSettings()
	}

	tiers, err := s.tiers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load margin tiers: %w", err)
	}

	quote := pricing.PriceFromCost(product.CostPrice, targetRevenue, settings, tiers)
	if product.HasValidCost() && quote.IsZero() {
		s.logger.Warn("cost-based pricing produced no price, rates may sum to 100% or more",
			zap.String("product_id", product.ID.String()),
			zap.String("cost_price", product.CostPrice.String()))
	}

	resolved := pricing.ResolveSalePrice(product, targetRevenue, settings, tiers)
	if resolved.Source == pricing.PriceSourceBase {
		s.logger.Info("sale price fell back to configured base price",
			zap.String("product_id", product.ID.String()),
			zap.String("price", resolved.Price.String()))
	}

	return &ProductQuote{
		Quote:  quote,
		Price:  resolved.Price,
		Source: resolved.Source,
	}, nil
}
