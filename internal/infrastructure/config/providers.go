package config

import (
	"context"

	"github.com/promogoods/backend/internal/domain/commission"
	"github.com/promogoods/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// The providers below adapt static configuration to the domain settings
// ports, for deployments where financial rates come from config rather than
// a settings store.

// PricingSettingsProvider serves pricing settings from configuration
type PricingSettingsProvider struct {
	finance FinanceConfig
}

// NewPricingSettingsProvider creates a provider backed by the given config
func NewPricingSettingsProvider(cfg *Config) *PricingSettingsProvider {
	return &PricingSettingsProvider{finance: cfg.Finance}
}

// Get implements pricing.SettingsRepository
func (p *PricingSettingsProvider) Get(_ context.Context) (pricing.Settings, error) {
	return p.finance.PricingSettings(), nil
}

// CommissionSettingsProvider serves commission settings from configuration
type CommissionSettingsProvider struct {
	finance FinanceConfig
}

// NewCommissionSettingsProvider creates a provider backed by the given config
func NewCommissionSettingsProvider(cfg *Config) *CommissionSettingsProvider {
	return &CommissionSettingsProvider{finance: cfg.Finance}
}

// Get implements commission.SettingsRepository
func (p *CommissionSettingsProvider) Get(_ context.Context) (commission.Settings, error) {
	return p.finance.CommissionSettings(), nil
}

// MarginTierProvider serves a single open-ended margin tier built from the
// configured margin rates, used when no tier table is maintained
type MarginTierProvider struct {
	finance FinanceConfig
}

// NewMarginTierProvider creates a provider backed by the given config
func NewMarginTierProvider(cfg *Config) *MarginTierProvider {
	return &MarginTierProvider{finance: cfg.Finance}
}

// FindAll implements pricing.MarginTierRepository
func (p *MarginTierProvider) FindAll(_ context.Context) ([]pricing.MarginTier, error) {
	return []pricing.MarginTier{
		{
			MinRevenue:        decimal.Zero,
			MarginRate:        decimal.NewFromFloat(p.finance.MarginRate),
			MinimumMarginRate: decimal.NewFromFloat(p.finance.MinimumMarginRate),
		},
	}, nil
}
