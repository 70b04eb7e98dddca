package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"PROMO_APP_NAME":                    os.Getenv("PROMO_APP_NAME"),
		"PROMO_APP_ENV":                     os.Getenv("PROMO_APP_ENV"),
		"PROMO_LOG_LEVEL":                   os.Getenv("PROMO_LOG_LEVEL"),
		"PROMO_LOG_FORMAT":                  os.Getenv("PROMO_LOG_FORMAT"),
		"PROMO_FINANCE_TAX_RATE":            os.Getenv("PROMO_FINANCE_TAX_RATE"),
		"PROMO_FINANCE_COMMISSION_RATE":     os.Getenv("PROMO_FINANCE_COMMISSION_RATE"),
		"PROMO_FINANCE_MARGIN_RATE":         os.Getenv("PROMO_FINANCE_MARGIN_RATE"),
		"PROMO_FINANCE_MINIMUM_MARGIN_RATE": os.Getenv("PROMO_FINANCE_MINIMUM_MARGIN_RATE"),
		"PROMO_FINANCE_VENDOR_RATE":         os.Getenv("PROMO_FINANCE_VENDOR_RATE"),
		"PROMO_FINANCE_PARTNER_POOL_RATE":   os.Getenv("PROMO_FINANCE_PARTNER_POOL_RATE"),
		"PROMO_FINANCE_DAY_TOLERANCE":       os.Getenv("PROMO_FINANCE_DAY_TOLERANCE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "promogoods-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, float64(9), cfg.Finance.TaxRate)
		assert.Equal(t, float64(15), cfg.Finance.CommissionRate)
		assert.Equal(t, float64(28), cfg.Finance.MarginRate)
		assert.Equal(t, float64(20), cfg.Finance.MinimumMarginRate)
		assert.Equal(t, float64(15), cfg.Finance.VendorRate)
		assert.Equal(t, float64(15), cfg.Finance.PartnerPoolRate)
		assert.Equal(t, 3, cfg.Finance.DayTolerance)
	})

	t.Run("loads values from environment variables with PROMO prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_APP_NAME", "test-app")
		os.Setenv("PROMO_LOG_LEVEL", "debug")
		os.Setenv("PROMO_FINANCE_TAX_RATE", "12")
		os.Setenv("PROMO_FINANCE_VENDOR_RATE", "10")
		os.Setenv("PROMO_FINANCE_DAY_TOLERANCE", "5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, float64(12), cfg.Finance.TaxRate)
		assert.Equal(t, float64(10), cfg.Finance.VendorRate)
		assert.Equal(t, 5, cfg.Finance.DayTolerance)
	})

	t.Run("validates rates stay below 100", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_FINANCE_VENDOR_RATE", "150")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vendor_rate")
	})

	t.Run("validates pricing rates cannot sum to 100 or more", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_FINANCE_TAX_RATE", "50")
		os.Setenv("PROMO_FINANCE_COMMISSION_RATE", "30")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsolvable")
	})

	t.Run("validates minimum margin cannot exceed margin", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_FINANCE_MINIMUM_MARGIN_RATE", "35")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minimum_margin_rate")
	})

	t.Run("validates day tolerance cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_FINANCE_DAY_TOLERANCE", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "day_tolerance")
	})

	t.Run("zero rate uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("PROMO_FINANCE_TAX_RATE", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (9) is used
		assert.Equal(t, float64(9), cfg.Finance.TaxRate)
	})
}

func TestFinanceConfigConverters(t *testing.T) {
	finance := FinanceConfig{
		TaxRate:         9,
		CommissionRate:  15,
		VendorRate:      10,
		PartnerPoolRate: 12,
	}

	t.Run("pricing settings carry tax and commission", func(t *testing.T) {
		settings := finance.PricingSettings()
		assert.Equal(t, "9", settings.TaxRate.String())
		assert.Equal(t, "15", settings.CommissionRate.String())
		assert.False(t, settings.IsZero())
	})

	t.Run("commission settings carry vendor and pool rates", func(t *testing.T) {
		settings := finance.CommissionSettings()
		assert.Equal(t, "10", settings.VendorRate.String())
		assert.Equal(t, "12", settings.PartnerPoolRate.String())
	})
}

func TestConfigProviders(t *testing.T) {
	cfg := &Config{
		Finance: FinanceConfig{
			TaxRate:           9,
			CommissionRate:    15,
			MarginRate:        28,
			MinimumMarginRate: 20,
			VendorRate:        15,
			PartnerPoolRate:   15,
			DayTolerance:      3,
		},
	}

	t.Run("pricing settings provider serves configured rates", func(t *testing.T) {
		settings, err := NewPricingSettingsProvider(cfg).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "9", settings.TaxRate.String())
	})

	t.Run("commission settings provider serves configured rates", func(t *testing.T) {
		settings, err := NewCommissionSettingsProvider(cfg).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "15", settings.VendorRate.String())
	})

	t.Run("margin tier provider serves one open-ended tier", func(t *testing.T) {
		tiers, err := NewMarginTierProvider(cfg).FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, tiers, 1)
		assert.True(t, tiers[0].MinRevenue.IsZero())
		assert.Nil(t, tiers[0].MaxRevenue)
		assert.Equal(t, "28", tiers[0].MarginRate.String())
		assert.Equal(t, "20", tiers[0].MinimumMarginRate.String())
	})
}
