package config

import (
	"fmt"
	"strings"

	"github.com/promogoods/backend/internal/domain/commission"
	"github.com/promogoods/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Finance FinanceConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// FinanceConfig consolidates every financial rate in one place, with named
// fields and documented defaults, so the pricing default and the
// commission-settings default can never silently drift apart.
// All rates are percentages.
type FinanceConfig struct {
	TaxRate           float64 // default 9
	CommissionRate    float64 // default 15
	MarginRate        float64 // default 28
	MinimumMarginRate float64 // default 20
	VendorRate        float64 // default 15
	PartnerPoolRate   float64 // default 15
	DayTolerance      int     // reconciliation settlement window, default 3
}

// PricingSettings returns the configured rates as pricing settings
func (f *FinanceConfig) PricingSettings() pricing.Settings {
	return pricing.Settings{
		TaxRate:        decimal.NewFromFloat(f.TaxRate),
		CommissionRate: decimal.NewFromFloat(f.CommissionRate),
	}
}

// CommissionSettings returns the configured rates as commission settings
func (f *FinanceConfig) CommissionSettings() commission.Settings {
	return commission.Settings{
		VendorRate:      decimal.NewFromFloat(f.VendorRate),
		PartnerPoolRate: decimal.NewFromFloat(f.PartnerPoolRate),
	}
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PROMO_ prefix (e.g. PROMO_FINANCE_TAX_RATE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PROMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Finance: FinanceConfig{
			TaxRate:           v.GetFloat64("finance.tax_rate"),
			CommissionRate:    v.GetFloat64("finance.commission_rate"),
			MarginRate:        v.GetFloat64("finance.margin_rate"),
			MinimumMarginRate: v.GetFloat64("finance.minimum_margin_rate"),
			VendorRate:        v.GetFloat64("finance.vendor_rate"),
			PartnerPoolRate:   v.GetFloat64("finance.partner_pool_rate"),
			DayTolerance:      v.GetInt("finance.day_tolerance"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "promogoods-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Finance.TaxRate == 0 {
		cfg.Finance.TaxRate = 9
	}
	if cfg.Finance.CommissionRate == 0 {
		cfg.Finance.CommissionRate = 15
	}
	if cfg.Finance.MarginRate == 0 {
		cfg.Finance.MarginRate = 28
	}
	if cfg.Finance.MinimumMarginRate == 0 {
		cfg.Finance.MinimumMarginRate = 20
	}
	if cfg.Finance.VendorRate == 0 {
		cfg.Finance.VendorRate = 15
	}
	if cfg.Finance.PartnerPoolRate == 0 {
		cfg.Finance.PartnerPoolRate = 15
	}
	if cfg.Finance.DayTolerance == 0 {
		cfg.Finance.DayTolerance = 3
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	f := c.Finance
	for name, rate := range map[string]float64{
		"finance.tax_rate":            f.TaxRate,
		"finance.commission_rate":     f.CommissionRate,
		"finance.margin_rate":         f.MarginRate,
		"finance.minimum_margin_rate": f.MinimumMarginRate,
		"finance.vendor_rate":         f.VendorRate,
		"finance.partner_pool_rate":   f.PartnerPoolRate,
	} {
		if rate < 0 || rate >= 100 {
			return fmt.Errorf("%s must be in [0, 100), got %v", name, rate)
		}
	}

	// Rates summing to 100% and above would make every derived price zero
	if f.TaxRate+f.CommissionRate+f.MarginRate >= 100 {
		return fmt.Errorf("finance rates sum to %v%%, prices would be unsolvable",
			f.TaxRate+f.CommissionRate+f.MarginRate)
	}
	if f.MinimumMarginRate > f.MarginRate {
		return fmt.Errorf("finance.minimum_margin_rate (%v) cannot exceed finance.margin_rate (%v)",
			f.MinimumMarginRate, f.MarginRate)
	}
	if f.DayTolerance < 0 {
		return fmt.Errorf("finance.day_tolerance cannot be negative")
	}

	return nil
}
